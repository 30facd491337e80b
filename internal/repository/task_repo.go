package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todai/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id::text, title, description, status, priority, due_date, project, created_at, updated_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var status string
	var project *string
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&status,
		&t.Priority,
		&t.DueDate,
		&project,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = domain.Status(status)
	if project != nil {
		p := domain.Project(*project)
		t.Project = &p
	}
	return &t, nil
}

// List returns the full collection ordered by creation time. The collection
// is assumed to fit in memory; filtering happens client-side.
func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1::uuid`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("Task not found")
	}
	return t, err
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	var project *string
	if t.Project != nil {
		s := string(*t.Project)
		project = &s
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, project)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		t.ID, t.Title, t.Description, string(t.Status), t.Priority, t.DueDate, project,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.NewDuplicateError()
	}
	return err
}

// Update applies only the fields present in the patch. Explicit nulls clear
// priority, due_date and project; updated_at always moves forward.
func (r *TaskRepository) Update(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.Title.Set {
		sets = append(sets, "title = "+arg(strings.TrimSpace(p.Title.Value)))
	}
	if p.Description.Set {
		desc := ""
		if !p.Description.Null {
			desc = strings.TrimSpace(p.Description.Value)
		}
		sets = append(sets, "description = "+arg(desc))
	}
	if p.Status.Present() {
		sets = append(sets, "status = "+arg(string(p.Status.Value)))
	}
	if p.Priority.Set {
		if p.Priority.Null {
			sets = append(sets, "priority = NULL")
		} else {
			sets = append(sets, "priority = "+arg(p.PriorityInt()))
		}
	}
	if p.DueDate.Set {
		if p.DueDate.Null {
			sets = append(sets, "due_date = NULL")
		} else {
			sets = append(sets, "due_date = "+arg(p.DueDate.Value))
		}
	}
	if p.Project.Set {
		if p.Project.Null {
			sets = append(sets, "project = NULL")
		} else {
			sets = append(sets, "project = "+arg(string(p.Project.Value)))
		}
	}

	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = %s::uuid RETURNING %s`,
		strings.Join(sets, ", "), arg(id), taskColumns,
	)

	t, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("Task not found")
	}
	return t, err
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("Task not found")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
