package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/usedbooks-backend/internal/modules/book"
	"github.com/georgemunganga/usedbooks-backend/internal/modules/customer"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/queries"
	"github.com/shopspring/decimal"
)

// Queries lists the named statements this store executes beyond the book and
// customer ones it borrows.
var Queries = []string{
	"insert_order",
	"insert_order_detail",
	"fetch_order_by_id",
	"list_order_details",
	"list_orders_by_customer",
}

type sqlRepo struct {
	db *sql.DB
	q  *queries.Set
}

func NewSQLRepository(db *sql.DB, q *queries.Set) Repository { return &sqlRepo{db: db, q: q} }

func (r *sqlRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			err = withRollback(fmt.Errorf("order transaction aborted: %v", p), tx.Rollback())
		}
	}()

	if err := fn(ctx, &sqlTx{tx: tx, q: r.q}); err != nil {
		return withRollback(err, tx.Rollback())
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// withRollback reports a failed rollback alongside err. sql.ErrTxDone means the
// driver already rolled back, for example after ctx was cancelled.
func withRollback(err, rbErr error) error {
	if rbErr == nil || errors.Is(rbErr, sql.ErrTxDone) {
		return err
	}
	return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
}

func (r *sqlRepo) CreditBalance(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	var credit decimal.Decimal
	err := r.db.QueryRowContext(ctx, r.q.Get("fetch_credit_by_customer_id"), customerID).Scan(&credit)
	return credit, err
}

func (r *sqlRepo) GetOrderByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, r.q.Get("fetch_order_by_id"), id))
	if err != nil {
		return nil, err
	}
	o.Lines, err = r.listLines(ctx, o.ID)
	return o, err
}

func (r *sqlRepo) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, r.q.Get("list_orders_by_customer"), customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *sqlRepo) listLines(ctx context.Context, orderID int64) ([]*OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, r.q.Get("list_order_details"), orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*OrderLine
	for rows.Next() {
		l := &OrderLine{}
		if err := rows.Scan(&l.ID, &l.OrderID, &l.BookID, &l.Title, &l.Price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.EmployeeID,
		&o.TotalAmount, &o.CreditApplied, &o.AmountPaid, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ── transaction ──────────────────────────────────────────────────────────────

type sqlTx struct {
	tx *sql.Tx
	q  *queries.Set
}

func (t *sqlTx) LockCredit(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	return customer.LockCredit(ctx, t.tx, t.q, customerID)
}

func (t *sqlTx) InsertOrder(ctx context.Context, o *Order) (int64, error) {
	return t.q.InsertID(ctx, t.tx, "insert_order",
		o.OrderNumber, o.CustomerID, o.EmployeeID, o.TotalAmount, o.CreditApplied, o.AmountPaid)
}

func (t *sqlTx) InsertLine(ctx context.Context, l *OrderLine) error {
	_, err := t.tx.ExecContext(ctx, t.q.Get("insert_order_detail"), l.OrderID, l.BookID, l.Title, l.Price)
	return err
}

func (t *sqlTx) MarkBookSold(ctx context.Context, bookID int64) error {
	ok, err := book.MarkSold(ctx, t.tx, t.q, bookID)
	if err != nil || ok {
		return err
	}
	b, err := book.FetchByID(ctx, t.tx, t.q, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("No book found with ID: %d", bookID)
	}
	if err != nil {
		return err
	}
	return apperr.AlreadySold("Book '%s' is already sold.", b.Title)
}

func (t *sqlTx) StoreCredit(ctx context.Context, customerID int64, total decimal.Decimal) error {
	return customer.StoreCredit(ctx, t.tx, t.q, customerID, total)
}
