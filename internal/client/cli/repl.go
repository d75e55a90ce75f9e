package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Modes(ctx context.Context) error
	SwitchMode(ctx context.Context, name string) error
	Edit(ctx context.Context, scanner *bufio.Scanner) error
	Show(ctx context.Context) error
	Snapshot(ctx context.Context) error
	Status(ctx context.Context) error
	Export(ctx context.Context) error
	Watch(ctx context.Context, path string) error
	InspectJWT(ctx context.Context, token, secret string) error
	InspectCert(ctx context.Context, path string) error
}

// runREPL starts a simple read–eval–print loop for the hub CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//   - help               — show available commands
//   - modes              — list configured content modes
//   - mode <name>        — switch the active mode
//   - edit               — enter content, terminated by a single "." line
//   - show               — print the active editor's content
//   - snapshot           — queue an immediate snapshot
//   - status             — show the snapshot indicator
//   - export             — build a ZIP of all modes' content
//   - watch <path>       — mirror writes to a draft file into the editor
//   - jwt <token> [key]  — decode (and with a key, verify) a JWT
//   - cert <path>        — summarize PEM certificates in a file
//   - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hub %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: modes, mode <name>, edit, show, snapshot, status, export, watch <path>, jwt <token> [key], cert <path>, exit")

		case "modes":
			_ = a.Modes(ctx)

		case "mode":
			if len(args) == 0 {
				printlnFn("Usage: mode <name>")
				continue
			}
			_ = a.SwitchMode(ctx, args[0])

		case "edit":
			_ = a.Edit(ctx, scanner)

		case "show":
			_ = a.Show(ctx)

		case "snapshot":
			_ = a.Snapshot(ctx)

		case "status":
			_ = a.Status(ctx)

		case "export":
			_ = a.Export(ctx)

		case "watch":
			if len(args) == 0 {
				printlnFn("Usage: watch <path>")
				continue
			}
			_ = a.Watch(ctx, args[0])

		case "jwt":
			if len(args) == 0 {
				printlnFn("Usage: jwt <token> [key]")
				continue
			}
			secret := ""
			if len(args) > 1 {
				secret = args[1]
			}
			_ = a.InspectJWT(ctx, args[0], secret)

		case "cert":
			if len(args) == 0 {
				printlnFn("Usage: cert <path>")
				continue
			}
			_ = a.InspectCert(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
