package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Fields(ctx context.Context) error
	Show(ctx context.Context) error
	SetField(ctx context.Context, args []string) error
	Mode(ctx context.Context, args []string) error
	Attach(ctx context.Context, args []string) error
	GenerateKeys(ctx context.Context) error
	Validate(ctx context.Context) error
	Submit(ctx context.Context) error
	NewSession(ctx context.Context) error
}

const helpText = `Available commands:
  fields                 list the fields of the current cipher mode
  show                   show the current descriptor
  set <field> [value]    set a field (prompts when value is omitted)
  mode [cipher]          select the cipher mode
  attach <path>          select the file to transfer
  genkeys                generate AES key material on the backend
  validate               list the fields that block submission
  submit                 upload the descriptor and the file
  new                    discard this session and start a new one
  exit | quit            leave the program`

// runREPL reads commands from reader until EOF, exit or quit, and dispatches
// them to a. The prompt shows statusFn's summary of the session.
//
// Errors returned by command handlers are printed and the loop continues;
// no command failure ends the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "xfer %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, helpText)
		case "fields":
			cmdErr = a.Fields(ctx)
		case "show":
			cmdErr = a.Show(ctx)
		case "set":
			cmdErr = a.SetField(ctx, args)
		case "mode":
			cmdErr = a.Mode(ctx, args)
		case "attach":
			cmdErr = a.Attach(ctx, args)
		case "genkeys":
			cmdErr = a.GenerateKeys(ctx)
		case "validate":
			cmdErr = a.Validate(ctx)
		case "submit":
			cmdErr = a.Submit(ctx)
		case "new":
			cmdErr = a.NewSession(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd, "(type 'help' for commands)")
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "error:", cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
