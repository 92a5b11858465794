package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fastygo/tasktracker/domain"
	authUC "github.com/fastygo/tasktracker/usecase/auth"
	taskUC "github.com/fastygo/tasktracker/usecase/task"
)

// view is a minimal line-oriented front end. It talks to the session
// manager and task store only through their public contract; list indexes
// shown to the user map to task ids held between commands.
type view struct {
	sessions *authUC.Manager
	tasks    *taskUC.Store
	in       *bufio.Scanner
	out      io.Writer

	filter  domain.Filter
	listIDs []string
}

func newView(sessions *authUC.Manager, tasks *taskUC.Store, in io.Reader, out io.Writer) *view {
	return &view{
		sessions: sessions,
		tasks:    tasks,
		in:       bufio.NewScanner(in),
		out:      out,
		filter:   domain.FilterAll,
	}
}

func (v *view) run(ctx context.Context) error {
	fmt.Fprintln(v.out, "task tracker — type 'help' for commands")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !v.sessions.LoggedIn() {
			fmt.Fprint(v.out, "username: ")
			name, ok := v.readLine()
			if !ok {
				return nil
			}
			if strings.TrimSpace(name) == "" {
				continue
			}
			if _, err := v.sessions.Login(ctx, name); err != nil {
				fmt.Fprintf(v.out, "  %v\n", err)
			}
			continue
		}

		fmt.Fprintf(v.out, "%s> ", v.sessions.Current().Username)
		line, ok := v.readLine()
		if !ok {
			return nil
		}
		cmd, rest := splitCommand(line)
		switch cmd {
		case "":
		case "help":
			v.printHelp()
		case "add":
			v.cmdAdd(ctx, rest)
		case "list":
			v.cmdList(rest)
		case "done":
			v.cmdToggle(ctx, rest)
		case "edit":
			v.cmdEdit(ctx, rest)
		case "rm":
			v.cmdDelete(ctx, rest)
		case "stats":
			v.cmdStats()
		case "logout":
			if err := v.sessions.Logout(ctx); err != nil {
				fmt.Fprintf(v.out, "  %v\n", err)
			}
			v.listIDs = nil
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(v.out, "  unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (v *view) cmdAdd(ctx context.Context, rest string) {
	title, description := splitFields(rest)
	created, err := v.tasks.Add(ctx, title, description)
	if err != nil {
		fmt.Fprintf(v.out, "  %v\n", err)
		return
	}
	fmt.Fprintf(v.out, "  added %q\n", created.Title)
}

func (v *view) cmdList(rest string) {
	switch strings.TrimSpace(rest) {
	case "pending":
		v.filter = domain.FilterPending
	case "completed":
		v.filter = domain.FilterCompleted
	case "all":
		v.filter = domain.FilterAll
	case "":
		// keep the current filter
	default:
		fmt.Fprintln(v.out, "  filters: all, pending, completed")
		return
	}

	display := v.tasks.Display(v.filter)
	v.listIDs = make([]string, len(display))
	if len(display) == 0 {
		fmt.Fprintf(v.out, "  no %s tasks\n", v.filter)
		return
	}
	for i, t := range display {
		v.listIDs[i] = t.ID
		mark := " "
		if t.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(v.out, "  %2d [%s] %s", i+1, mark, t.Title)
		if t.Description != "" {
			fmt.Fprintf(v.out, " — %s", t.Description)
		}
		fmt.Fprintln(v.out)
	}
}

func (v *view) cmdToggle(ctx context.Context, rest string) {
	id, ok := v.resolveIndex(rest)
	if !ok {
		return
	}
	toggled, err := v.tasks.Toggle(ctx, id)
	if err != nil {
		fmt.Fprintf(v.out, "  %v\n", err)
		return
	}
	state := "pending"
	if toggled.IsCompleted {
		state = "completed"
	}
	fmt.Fprintf(v.out, "  %q is now %s\n", toggled.Title, state)
}

func (v *view) cmdEdit(ctx context.Context, rest string) {
	numStr, fields := splitCommand(rest)
	id, ok := v.resolveIndex(numStr)
	if !ok {
		return
	}
	current, err := v.tasks.Get(id)
	if err != nil {
		fmt.Fprintf(v.out, "  %v\n", err)
		return
	}
	title, description := splitFields(fields)
	updated := *current
	updated.Title = title
	updated.Description = description
	if _, err := v.tasks.Update(ctx, id, updated); err != nil {
		fmt.Fprintf(v.out, "  %v\n", err)
		return
	}
	fmt.Fprintln(v.out, "  updated")
}

// cmdDelete runs the two-step protocol: request a token, show the title,
// and only confirm on an explicit yes.
func (v *view) cmdDelete(ctx context.Context, rest string) {
	id, ok := v.resolveIndex(rest)
	if !ok {
		return
	}
	token, title, err := v.tasks.RequestDelete(id)
	if err != nil {
		fmt.Fprintf(v.out, "  %v\n", err)
		return
	}
	fmt.Fprintf(v.out, "  delete %q? this cannot be undone (y/N): ", title)
	answer, _ := v.readLine()
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		v.tasks.CancelDelete(token)
		fmt.Fprintln(v.out, "  kept")
		return
	}
	if _, err := v.tasks.ConfirmDelete(ctx, token); err != nil {
		fmt.Fprintf(v.out, "  %v\n", err)
		return
	}
	fmt.Fprintln(v.out, "  deleted")
}

func (v *view) cmdStats() {
	counts := v.tasks.Counts()
	fmt.Fprintf(v.out, "  all %d · pending %d · completed %d · %d%% done\n",
		counts.All, counts.Pending, counts.Completed, v.tasks.CompletionRate())
}

func (v *view) resolveIndex(arg string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(v.listIDs) {
		fmt.Fprintln(v.out, "  give a task number from the last 'list'")
		return "", false
	}
	return v.listIDs[n-1], true
}

func (v *view) readLine() (string, bool) {
	if !v.in.Scan() {
		return "", false
	}
	return v.in.Text(), true
}

func (v *view) printHelp() {
	fmt.Fprint(v.out, `  add <title> | <description>   create a task
  list [all|pending|completed]  show tasks
  done <n>                      toggle completion
  edit <n> <title> | <desc>     rewrite a task
  rm <n>                        delete (asks for confirmation)
  stats                         counts and completion rate
  logout                        clear session and tasks
  quit                          exit
`)
}

func splitCommand(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// splitFields separates "title | description" input.
func splitFields(rest string) (string, string) {
	parts := strings.SplitN(rest, "|", 2)
	title := strings.TrimSpace(parts[0])
	description := ""
	if len(parts) == 2 {
		description = strings.TrimSpace(parts[1])
	}
	return title, description
}
