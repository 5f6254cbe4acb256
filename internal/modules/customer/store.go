package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/queries"
	"github.com/shopspring/decimal"
)

// Queries lists the named statements this store executes.
var Queries = []string{
	"check_customer_email",
	"add_new_customer",
	"fetch_customer_by_id",
	"mark_customer_as_inactive",
	"fetch_credit_by_customer_id",
	"lock_credit_by_customer_id",
	"lookup_customer_credit_by_email",
	"update_customer_credit_total",
}

type sqlRepo struct {
	db *sql.DB
	q  *queries.Set
}

func NewSQLRepository(db *sql.DB, q *queries.Set) Repository { return &sqlRepo{db: db, q: q} }

func (r *sqlRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.q.Get("check_customer_email"), email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *sqlRepo) Create(ctx context.Context, c *Customer) error {
	id, err := r.q.InsertID(ctx, r.db, "add_new_customer", c.FirstName, c.LastName, c.Email)
	if err != nil {
		return err
	}
	c.ID = id
	c.CreditTotal = decimal.Zero
	c.Status = StatusActive
	return nil
}

func (r *sqlRepo) GetActiveByID(ctx context.Context, id int64) (*Customer, error) {
	c := &Customer{}
	err := r.db.QueryRowContext(ctx, r.q.Get("fetch_customer_by_id"), id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CreditTotal, &c.Status)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *sqlRepo) MarkInactive(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.q.Get("mark_customer_as_inactive"), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *sqlRepo) CreditByID(ctx context.Context, id int64) (decimal.Decimal, error) {
	var credit decimal.Decimal
	err := r.db.QueryRowContext(ctx, r.q.Get("fetch_credit_by_customer_id"), id).Scan(&credit)
	return credit, err
}

func (r *sqlRepo) CreditByEmail(ctx context.Context, email string) (decimal.Decimal, error) {
	var credit decimal.Decimal
	err := r.db.QueryRowContext(ctx, r.q.Get("lookup_customer_credit_by_email"), email).Scan(&credit)
	return credit, err
}

func (r *sqlRepo) AdjustCredit(ctx context.Context, id int64, fn func(old decimal.Decimal) decimal.Decimal) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	old, err := LockCredit(ctx, tx, r.q, id)
	if err != nil {
		return decimal.Zero, err
	}
	updated := fn(old)
	if err := StoreCredit(ctx, tx, r.q, id, updated); err != nil {
		return decimal.Zero, err
	}
	if err := tx.Commit(); err != nil {
		return decimal.Zero, err
	}
	return updated, nil
}

// LockCredit reads an active customer's balance and holds the row lock until tx ends.
// Missing or inactive customers yield sql.ErrNoRows.
func LockCredit(ctx context.Context, tx queries.Execer, q *queries.Set, id int64) (decimal.Decimal, error) {
	var credit decimal.Decimal
	if err := tx.QueryRowContext(ctx, q.Get("lock_credit_by_customer_id"), id).Scan(&credit); err != nil {
		return decimal.Zero, err
	}
	return credit, nil
}

// StoreCredit overwrites a customer's balance.
func StoreCredit(ctx context.Context, tx queries.Execer, q *queries.Set, id int64, total decimal.Decimal) error {
	if _, err := tx.ExecContext(ctx, q.Get("update_customer_credit_total"), total, id); err != nil {
		return fmt.Errorf("update credit for customer %d: %w", id, err)
	}
	return nil
}
