package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktrack/internal/client/api"
)

// requireLogin gates task commands behind an active session, the CLI
// equivalent of redirecting an unauthenticated user to the login page.
func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return false
	}
	return true
}

func (a *App) reportError(err error) {
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		// expired or rejected token: the session is over, drop it
		a.client.ClearToken()
		a.userName = ""
		fmt.Fprintln(a.out, "Session expired, please login again")
	case errors.Is(err, api.ErrNotFound):
		fmt.Fprintln(a.out, "Task not found")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) Signup(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		a.reportError(err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.reportError(err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.reportError(err)
		return
	}

	acc, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		a.reportError(err)
		return
	}
	fmt.Fprintf(a.out, "Registered %s (%s), you can login now\n", acc.Username, acc.Email)
}

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.reportError(err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		a.reportError(err)
		return
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		a.reportError(err)
		return
	}
	a.userName = email
	fmt.Fprintln(a.out, "Logged in")
}

func (a *App) Logout(ctx context.Context) {
	a.client.ClearToken()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) ListTasks(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	tasks, err := a.client.ListTasks(ctx)
	if err != nil {
		a.reportError(err)
		return
	}
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks yet")
		return
	}
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(a.out, "[%s] %s  %s - %s\n", mark, t.ID, t.Title, t.Description)
	}
}

func (a *App) AddTask(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		a.reportError(err)
		return
	}
	description, err := GetSimpleText(a.reader, "Enter description", a.out)
	if err != nil {
		a.reportError(err)
		return
	}

	task, err := a.client.CreateTask(ctx, title, description)
	if err != nil {
		a.reportError(err)
		return
	}
	fmt.Fprintf(a.out, "Added task %s\n", task.ID)
}

func (a *App) ToggleTask(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: toggle <id>")
		return
	}

	completed, err := a.client.ToggleTask(ctx, args[0])
	if err != nil {
		a.reportError(err)
		return
	}
	if completed {
		fmt.Fprintln(a.out, "Task marked as done")
	} else {
		fmt.Fprintln(a.out, "Task marked as not done")
	}
}

func (a *App) DeleteTask(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}

	deleted, err := a.client.DeleteTask(ctx, args[0])
	if err != nil {
		a.reportError(err)
		return
	}
	fmt.Fprintf(a.out, "Deleted task %s (%s)\n", deleted.ID, deleted.Title)
}
