// Package canary manages the decoy folder lifecycle: creating configured
// folders, seeding them with decoy files, re-arming existing decoys on
// startup and handing armed folders to the filesystem watcher.
//
// Folder lifecycle on registration:
//   - Missing folder: created and seeded, but not watched until the next
//     registration cycle.
//   - Existing folder with files: every regular file gets its mtime
//     refreshed (re-arm), then the folder is watched.
//   - Existing empty folder: seeded, then watched.
//
// All per-file failures (touch, write, chmod) are logged and skipped;
// only folder creation, directory read and watch start are folder-scoped
// errors.
package canary
