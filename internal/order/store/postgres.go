package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"gatepass/internal/order/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// PostgresStore persists orders and their items in PostgreSQL. Items are
// written in the same transaction as the order so a partial order never
// becomes visible.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema for reference (managed by migrations outside this package):
//
//	CREATE TABLE orders (
//	    id            UUID PRIMARY KEY,
//	    reference     TEXT NOT NULL UNIQUE,
//	    user_id       UUID,
//	    user_name     TEXT NOT NULL DEFAULT '',
//	    user_email    TEXT NOT NULL DEFAULT '',
//	    supplier      TEXT NOT NULL DEFAULT '',
//	    order_date    DATE NOT NULL,
//	    status        TEXT NOT NULL,
//	    total_amount  NUMERIC(10,2) NOT NULL,
//	    justification TEXT NOT NULL DEFAULT '',
//	    notified      BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE order_items (
//	    id            BIGSERIAL PRIMARY KEY,
//	    order_id      UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
//	    product_name  TEXT NOT NULL,
//	    quantity      INTEGER NOT NULL,
//	    unit_price    NUMERIC(10,2) NOT NULL,
//	    justification TEXT NOT NULL DEFAULT ''
//	);
//
//	CREATE TABLE order_sequences (
//	    day TEXT PRIMARY KEY,
//	    seq INTEGER NOT NULL
//	);

const orderColumns = `id, reference, user_id, user_name, user_email, supplier, order_date, status, total_amount, justification, notified, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, o *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translateOrderErr("begin create order", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		uuid.UUID(o.ID), o.Reference, uuid.UUID(o.UserID), o.UserName, o.UserEmail,
		o.Supplier, o.OrderDate, string(o.Status), o.TotalAmount, o.Justification,
		o.Notified, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return translateOrderErr("create order", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_name, quantity, unit_price, justification)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.UUID(o.ID), item.ProductName, item.Quantity, item.UnitPrice, item.Justification)
		if err != nil {
			return translateOrderErr("create order item", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return translateOrderErr("commit create order", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, orderID id.OrderID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(s.db.QueryRowContext(ctx, query, uuid.UUID(orderID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, translateOrderErr("find order", err)
	}
	if err := s.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// FindAll returns every order with its items, newest first.
func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, reference DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateOrderErr("list orders", err)
	}
	defer rows.Close()

	out := make([]*models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, translateOrderErr("list orders", err)
	}

	for _, o := range out {
		if err := s.loadItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, o *models.Order) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, notified = $3, updated_at = $4
		WHERE id = $1
	`, uuid.UUID(o.ID), string(o.Status), o.Notified, o.UpdatedAt)
	if err != nil {
		return translateOrderErr("update order", err)
	}
	return requireOrderRow(res)
}

// NextSequence returns the next per-day reference sequence, starting at 1.
func (s *PostgresStore) NextSequence(ctx context.Context, day time.Time) (int, error) {
	var seq int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO order_sequences (day, seq) VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET seq = order_sequences.seq + 1
		RETURNING seq
	`, day.UTC().Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, translateOrderErr("next order sequence", err)
	}
	return seq, nil
}

func (s *PostgresStore) loadItems(ctx context.Context, o *models.Order) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, quantity, unit_price, justification
		FROM order_items WHERE order_id = $1 ORDER BY id
	`, uuid.UUID(o.ID))
	if err != nil {
		return translateOrderErr("load order items", err)
	}
	defer rows.Close()

	o.Items = o.Items[:0]
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductName, &item.Quantity, &item.UnitPrice, &item.Justification); err != nil {
			return fmt.Errorf("scan order item row: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return translateOrderErr("load order items", err)
	}
	return nil
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	var (
		o       models.Order
		orderID uuid.UUID
		userID  uuid.UUID
		status  string
	)
	err := row.Scan(
		&orderID, &o.Reference, &userID, &o.UserName, &o.UserEmail, &o.Supplier,
		&o.OrderDate, &status, &o.TotalAmount, &o.Justification, &o.Notified,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ID = id.OrderID(orderID)
	o.UserID = id.UserID(userID)
	o.Status = models.Status(status)
	return &o, nil
}

func requireOrderRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// translateOrderErr keeps the unavailable-vs-not-found distinction the
// services depend on, mirroring the visitor store's translation.
func translateOrderErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == "08" {
			return fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)
		}
		if pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		}
		return fmt.Errorf("%s: %w", op, pqErr)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
