package book

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgemunganga/usedbooks-backend/internal/modules/customer"
	"github.com/georgemunganga/usedbooks-backend/internal/platform/queries"
	"github.com/shopspring/decimal"
)

// Queries lists the named statements this store executes.
var Queries = []string{
	"insert_book",
	"fetch_book_by_id",
	"search_book_by_isbn",
	"search_available_book_by_isbn",
	"list_available_books",
	"mark_book_as_sold",
}

type sqlRepo struct {
	db *sql.DB
	q  *queries.Set
}

func NewSQLRepository(db *sql.DB, q *queries.Set) Repository { return &sqlRepo{db: db, q: q} }

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row scanner) (*Book, error) {
	b := &Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Condition, &b.Rating, &b.ISBN, &b.ISBN13,
		&b.Language, &b.Pages, &b.PurchasePrice, &b.ResalePrice, &b.Status)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *sqlRepo) GetByID(ctx context.Context, id int64) (*Book, error) {
	return FetchByID(ctx, r.db, r.q, id)
}

func (r *sqlRepo) SearchByISBN(ctx context.Context, isbn string, availableOnly bool) ([]*Book, error) {
	name := "search_book_by_isbn"
	if availableOnly {
		name = "search_available_book_by_isbn"
	}
	return r.list(ctx, name, isbn)
}

func (r *sqlRepo) ListAvailable(ctx context.Context, limit int) ([]*Book, error) {
	return r.list(ctx, "list_available_books", limit)
}

func (r *sqlRepo) list(ctx context.Context, name string, args ...interface{}) ([]*Book, error) {
	rows, err := r.db.QueryContext(ctx, r.q.Get(name), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *sqlRepo) Purchase(ctx context.Context, b *Book, customerID int64) (decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	id, err := r.q.InsertID(ctx, tx, "insert_book",
		b.Title, b.Author, b.Condition, b.Rating, b.ISBN, b.ISBN13,
		b.Language, b.Pages, b.PurchasePrice, b.ResalePrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("insert book: %w", err)
	}

	old, err := customer.LockCredit(ctx, tx, r.q, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	updated := customer.ApplyDelta(old, b.PurchasePrice)
	if err := customer.StoreCredit(ctx, tx, r.q, customerID, updated); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, err
	}
	b.ID = id
	b.Status = StatusAvailable
	return updated, nil
}

// FetchByID reads one book regardless of status.
func FetchByID(ctx context.Context, db queries.Execer, q *queries.Set, id int64) (*Book, error) {
	return scanBook(db.QueryRowContext(ctx, q.Get("fetch_book_by_id"), id))
}

// MarkSold flips an Available copy to Sold and reports whether a row changed.
func MarkSold(ctx context.Context, tx queries.Execer, q *queries.Set, id int64) (bool, error) {
	res, err := tx.ExecContext(ctx, q.Get("mark_book_as_sold"), id)
	if err != nil {
		return false, fmt.Errorf("mark book %d sold: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
