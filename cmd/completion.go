package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_palangrotte() {
    local cur prev words cword
    _init_completion || return

    local commands="run status encrypt decrypt keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        run|status)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-config" -- "$cur"))
            else
                _filedir
            fi
            ;;
        encrypt|decrypt)
            _filedir
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _palangrotte palangrotte
`

const zshCompletion = `#compdef palangrotte

_palangrotte() {
    local -a commands
    commands=(
        'run:Start the canary monitoring daemon'
        'status:Show vault and journal state'
        'encrypt:Encrypt a folder list into the vault'
        'decrypt:Decrypt the vault back into a folder list'
        'keyring:Manage vault password in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'palangrotte commands' commands
            ;;
        args)
            case "${words[2]}" in
                run|status)
                    _arguments '-config[Settings file path]:file:_files' '*:file:_files'
                    ;;
                encrypt|decrypt)
                    _arguments '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'palangrotte commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_palangrotte "$@"
`

const fishCompletion = `# palangrotte fish completions

set -l commands run status encrypt decrypt keyring help completion

complete -c palangrotte -f

# Commands
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a run -d 'Start the monitoring daemon'
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault and journal state'
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a encrypt -d 'Encrypt a folder list'
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a decrypt -d 'Decrypt the vault'
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage password in OS keyring'
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c palangrotte -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# run and status flags
complete -c palangrotte -n "__fish_seen_subcommand_from run status" -o config -d 'Settings file path' -F

# encrypt/decrypt file arguments
complete -c palangrotte -n "__fish_seen_subcommand_from encrypt decrypt" -F

# keyring subcommands
complete -c palangrotte -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c palangrotte -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c palangrotte -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
