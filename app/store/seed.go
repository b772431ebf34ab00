package store

import (
	"context"
	"fmt"
	"time"

	"todo-app/app/models"

	"github.com/google/uuid"
)

var seedTodos = []struct {
	Title     string
	Kind      string
	Completed bool
}{
	{"Review production logs", models.KindTask, true},
	{"Buy coffee for the team", models.KindTask, false},
	{"Idea: refactor the filtering engine", models.KindNote, false},
	{"Renew the Copilot subscription", models.KindTask, true},
	{"Configure staging environment variables", models.KindTask, false},
	{"Reminder: dentist tomorrow 10am", models.KindNote, false},
	{"Optimize the list queries", models.KindTask, true},
	{"Update README with deployment guide", models.KindTask, false},
	{"Feedback from the last design review", models.KindNote, false},
	{"Investigate Stripe integration", models.KindTask, false},
	{"Fix bug: padding in mobile layout", models.KindTask, true},
	{"Draft: roadmap Q1", models.KindNote, false},
}

// Seed inserts the sample data set and reports how many rows were added.
// Seeded rows get slightly staggered timestamps so the default createdAt
// ordering is deterministic.
func (s *TodoStore) Seed(ctx context.Context) (int, error) {
	base := time.Now().UTC().Truncate(time.Millisecond).Add(-time.Duration(len(seedTodos)) * time.Millisecond)
	for i, t := range seedTodos {
		ms := base.Add(time.Duration(i) * time.Millisecond).UnixMilli()
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO todos (id, title, completed, kind, created_at_unixms, updated_at_unixms)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), t.Title, boolToInt(t.Completed), t.Kind, ms, ms,
		)
		if err != nil {
			return i, fmt.Errorf("seed todos: %w", err)
		}
	}
	return len(seedTodos), nil
}

// SeedIfEmpty seeds only when the table has no rows; used by the server's
// -seed flag so restarts do not pile up sample data.
func (s *TodoStore) SeedIfEmpty(ctx context.Context) (int, error) {
	counts, err := s.CountByStatus(ctx)
	if err != nil {
		return 0, err
	}
	if counts.All > 0 {
		return 0, nil
	}
	return s.Seed(ctx)
}
