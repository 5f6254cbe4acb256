package employee

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/queries"
)

// Queries lists the named statements this store executes.
var Queries = []string{
	"add_new_employee",
	"fetch_employee_by_id",
	"count_active_employees",
	"mark_employee_as_terminated",
}

type sqlRepo struct {
	db *sql.DB
	q  *queries.Set
}

// NewSQLRepository creates an employee repository over either supported dialect.
func NewSQLRepository(db *sql.DB, q *queries.Set) Repository {
	return &sqlRepo{db: db, q: q}
}

func (r *sqlRepo) Create(ctx context.Context, e *Employee) error {
	id, err := r.q.InsertID(ctx, r.db, "add_new_employee",
		e.FirstName, e.LastName, e.Phone, e.AccessLevel, e.PasscodeHash)
	if err != nil {
		return err
	}
	e.ID = id
	e.Status = StatusActive
	return nil
}

func (r *sqlRepo) GetByID(ctx context.Context, id int64) (*Employee, error) {
	e := &Employee{}
	err := r.db.QueryRowContext(ctx, r.q.Get("fetch_employee_by_id"), id).Scan(
		&e.ID,
		&e.FirstName,
		&e.LastName,
		&e.Phone,
		&e.AccessLevel,
		&e.Status,
		&e.PasscodeHash,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *sqlRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, r.q.Get("count_active_employees")).Scan(&n)
	return n, err
}

func (r *sqlRepo) MarkTerminated(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.q.Get("mark_employee_as_terminated"), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
