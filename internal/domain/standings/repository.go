package standings

import "context"

// Repository persists the rebuilt table. Each rebuild replaces the
// previous snapshot wholesale.
type Repository interface {
	List(ctx context.Context) ([]Row, error)
	Replace(ctx context.Context, rows []Row) error
}
