package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	return ""
}

const helpText = `Commands:
  signup           register a new account
  login            sign in and start a session
  logout           drop the session token
  list             show your tasks
  add              add a task
  toggle <id>      flip a task's completion flag
  delete <id>      delete a task
  help             show this help
  exit             quit`

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to TaskTrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "ttcli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if a.dispatch(ctx, cmd, args) {
			return
		}
	}
}

// dispatch runs a single command; the returned bool reports whether the
// REPL should exit.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, helpText)
	case "signup":
		a.Signup(ctx)
	case "login":
		a.Login(ctx)
	case "logout":
		a.Logout(ctx)
	case "list":
		a.ListTasks(ctx)
	case "add":
		a.AddTask(ctx)
	case "toggle":
		a.ToggleTask(ctx, args)
	case "delete":
		a.DeleteTask(ctx, args)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true
	default:
		fmt.Fprintf(a.out, "Unknown command: %s (type 'help')\n", cmd)
	}
	return false
}
