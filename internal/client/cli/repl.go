package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs. printFn is used for the prompt, which must not
// end with a newline so input stays on the same line.
var printlnFn = fmt.Println
var printFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or on "exit"/"quit".
//
// Commands before login: help, register, login, exit.
// Commands after login: help, list, add <title>, done <id>, rm <id>,
// logout, exit.
//
// Errors returned by command handlers are printed and the loop continues;
// a failed command never terminates the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printFn(fmt.Sprintf("tk> %s > ", statusFn()))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				printlnFn(fmt.Sprintf("Error reading input: %v", err))
			}
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: list, add <title>, done <id>, rm <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "list":
			err = a.List(ctx)
		case "add":
			err = a.Add(ctx, args)
		case "done":
			err = a.Done(ctx, args)
		case "rm":
			err = a.Delete(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command. Type 'help' for the command list.")
		}

		if err != nil {
			printlnFn(fmt.Sprintf("Error: %v", err))
		}
	}
}

// Main starts the interactive session on stdin.
func (a *App) Main(ctx context.Context) {
	fmt.Println("TaskKeeper CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.showLogin, scanner)
}
