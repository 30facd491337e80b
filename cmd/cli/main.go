package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"todai/internal/client"
	"todai/internal/domain"
	"todai/internal/taskquery"
)

func main() {
	apiURL := flag.String("api", "http://localhost:5000", "base URL of the task API")

	view := flag.String("view", "all", "view mode: all, today, upcoming, completed")
	status := flag.String("status", "all", "status filter: all, todo, in-progress, done")
	project := flag.String("project", "all", "project filter: all or a project name")
	priority := flag.Int("priority", 0, "priority filter: 0 for all, otherwise 1..9")
	search := flag.String("search", "", "search query over title and description")
	sortField := flag.String("sort", "createdAt", "sort field: createdAt, title, status, priority, dueDate")
	order := flag.String("order", "desc", "sort order: asc or desc")

	add := flag.String("add", "", "create a task with the given title")
	desc := flag.String("desc", "", "description for -add")
	due := flag.String("due", "", "due date for -add (YYYY-MM-DD)")
	addPriority := flag.Int("add-priority", 0, "priority for -add (1..9)")
	addProject := flag.String("add-project", "", "project for -add")
	done := flag.String("done", "", "mark the task with this id as done")
	del := flag.String("delete", "", "delete the task with this id")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cache := client.NewCache(client.New(*apiURL))

	switch {
	case *add != "":
		in := client.TaskInput{Title: add}
		if *desc != "" {
			in.Description = desc
		}
		if *due != "" {
			d, err := time.ParseInLocation("2006-01-02", *due, time.Local)
			if err != nil {
				fatal("invalid -due date: %v", err)
			}
			in.DueDate = &d
		}
		if *addPriority != 0 {
			in.Priority = addPriority
		}
		if *addProject != "" {
			p := domain.Project(*addProject)
			in.Project = &p
		}
		t, err := cache.Create(ctx, in)
		if err != nil {
			reportError(err)
			os.Exit(1)
		}
		fmt.Printf("created %s\n", t.ID)

	case *done != "":
		s := domain.StatusDone
		if _, err := cache.Update(ctx, *done, client.TaskInput{Status: &s}); err != nil {
			reportError(err)
			os.Exit(1)
		}
		fmt.Println("done")

	case *del != "":
		if err := cache.Delete(ctx, *del); err != nil {
			reportError(err)
			os.Exit(1)
		}
		fmt.Println("deleted")
	}

	tasks, err := cache.Tasks(ctx)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	q := taskquery.Query{
		View:      taskquery.ViewMode(*view),
		Status:    *status,
		Project:   *project,
		Priority:  *priority,
		Search:    *search,
		SortField: taskquery.SortField(*sortField),
		SortOrder: taskquery.SortOrder(*order),
	}
	visible := taskquery.Apply(time.Now(), tasks, q)

	switch {
	case len(tasks) == 0:
		fmt.Println("No tasks yet.")
	case len(visible) == 0:
		fmt.Println("No tasks match your filters.")
	default:
		render(visible)
	}
}

func render(tasks []domain.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tPROJECT")
	for _, t := range tasks {
		priority := "-"
		if t.Priority != nil {
			priority = fmt.Sprintf("%d", *t.Priority)
		}
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Local().Format("2006-01-02")
		}
		project := "-"
		if t.Project != nil {
			project = string(*t.Project)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, priority, due, project)
	}
	w.Flush()
}

func reportError(err error) {
	var derr *domain.Error
	if errors.As(err, &derr) && len(derr.Fields) > 0 {
		fmt.Fprintln(os.Stderr, derr.Message)
		for _, f := range derr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
