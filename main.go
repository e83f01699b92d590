package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/live-labs/palangrotte/cmd"
)

const defaultConfig = "palangrotte.toml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		runRun(os.Args[2:])
	case "status":
		runStatus(os.Args[2:])
	case "encrypt":
		runVaultTool("encrypt", os.Args[2:])
	case "decrypt":
		runVaultTool("decrypt", os.Args[2:])
	case "keyring":
		runKeyring(os.Args[2:])
	case "completion":
		runCompletion(os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	config := fs.String("config", defaultConfig, "Settings file path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Run(*config)
}

func runStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	config := fs.String("config", defaultConfig, "Settings file path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Status(*config)
}

func runVaultTool(mode string, args []string) {
	fs := flag.NewFlagSet(mode, flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: palangrotte %s <input_file> <output_file>\n", mode)
		os.Exit(1)
	}

	if mode == "encrypt" {
		cmd.Encrypt(fs.Arg(0), fs.Arg(1))
	} else {
		cmd.Decrypt(fs.Arg(0), fs.Arg(1))
	}
}

func runKeyring(args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	config := fs.String("config", defaultConfig, "Settings file path")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: palangrotte keyring <save|delete|status>")
		os.Exit(1)
	}

	switch fs.Arg(0) {
	case "save":
		cmd.KeyringSave(*config)
	case "delete":
		cmd.KeyringDelete(*config)
	case "status":
		cmd.KeyringStatus(*config)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", fs.Arg(0))
		os.Exit(1)
	}
}

func runCompletion(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: palangrotte completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("palangrotte - Canary folder tripwire daemon")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  palangrotte <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run         Start the canary monitoring daemon")
	fmt.Println("  status      Show vault and journal state (no password needed)")
	fmt.Println("  encrypt     Encrypt a plaintext folder list into the vault")
	fmt.Println("  decrypt     Decrypt the vault back into a plaintext folder list")
	fmt.Println("  keyring     Manage the vault password in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  palangrotte encrypt folders.txt folders.enc   # Create the vault")
	fmt.Println("  palangrotte run                               # Arm folders and watch")
	fmt.Println("  palangrotte run -config /etc/palangrotte.toml # With a settings file")
	fmt.Println("  palangrotte status                            # Inspect detections")
	fmt.Println()
	fmt.Println("Use 'palangrotte help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "run":
		fmt.Println("palangrotte run [-config <file>]")
		fmt.Println()
		fmt.Println("Starts the canary monitoring daemon:")
		fmt.Println("  - Decrypts the folder vault")
		fmt.Println("  - Creates, seeds and re-arms every configured canary folder")
		fmt.Println("  - Watches the folders and escalates on any modification:")
		fmt.Println("    log, remote alert, session broadcast, host shutdown")
		fmt.Println()
		fmt.Println("The vault password is taken from the settings file, the")
		fmt.Println("PALANGROTTE_PASSWORD environment variable, the OS keyring, or")
		fmt.Println("an interactive prompt, in that order.")
	case "status":
		fmt.Println("palangrotte status [-config <file>]")
		fmt.Println()
		fmt.Println("Shows the vault file state, the registered canary folders and")
		fmt.Println("the most recent detections from the journal.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "encrypt":
		fmt.Println("palangrotte encrypt <input_file> <output_file>")
		fmt.Println()
		fmt.Println("Encrypts a plaintext folder list (one path per line) into the")
		fmt.Println("vault blob read by the daemon. Prompts for the password twice")
		fmt.Println("with input masked.")
	case "decrypt":
		fmt.Println("palangrotte decrypt <input_file> <output_file>")
		fmt.Println()
		fmt.Println("Decrypts a vault blob back into the plaintext folder list.")
	case "keyring":
		fmt.Println("palangrotte keyring <save|delete|status> [-config <file>]")
		fmt.Println()
		fmt.Println("Manages the vault password in the OS keyring so the daemon can")
		fmt.Println("start without an interactive prompt.")
	case "completion":
		fmt.Println("palangrotte completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs a shell completion script for the specified shell.")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
