package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// PostgresStore persists visitor records in PostgreSQL.
// This store is pure I/O — badge and notification rules live in the services.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema for reference (managed by migrations outside this package):
//
//	CREATE TABLE visitors (
//	    id             BIGSERIAL PRIMARY KEY,
//	    name           TEXT NOT NULL,
//	    company        TEXT NOT NULL DEFAULT '',
//	    purpose        TEXT NOT NULL DEFAULT '',
//	    visit_date     DATE NOT NULL,
//	    visit_time     TEXT NOT NULL DEFAULT '',
//	    contact_person TEXT NOT NULL,
//	    badge_token    TEXT NOT NULL DEFAULT '',
//	    notified       BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at     TIMESTAMPTZ NOT NULL,
//	    updated_at     TIMESTAMPTZ NOT NULL
//	);

const visitorColumns = `id, name, company, purpose, visit_date, visit_time, contact_person, badge_token, notified, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, v *models.Visitor) error {
	query := `
		INSERT INTO visitors (name, company, purpose, visit_date, visit_time, contact_person, badge_token, notified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		v.Name, v.Company, v.Purpose, v.VisitDate, v.VisitTime,
		v.ContactPerson, v.BadgeToken, v.Notified, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return translatePgErr("create visitor", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors WHERE id = $1`
	v, err := scanVisitor(s.db.QueryRowContext(ctx, query, visitorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, translatePgErr("find visitor", err)
	}
	return v, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]*models.Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translatePgErr("list visitors", err)
	}
	defer rows.Close()

	out := make([]*models.Visitor, 0)
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visitor row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgErr("list visitors", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, v *models.Visitor) error {
	query := `
		UPDATE visitors
		SET name = $2, company = $3, purpose = $4, visit_date = $5, visit_time = $6,
		    contact_person = $7, badge_token = $8, notified = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		v.ID, v.Name, v.Company, v.Purpose, v.VisitDate, v.VisitTime,
		v.ContactPerson, v.BadgeToken, v.Notified, v.UpdatedAt,
	)
	if err != nil {
		return translatePgErr("update visitor", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, visitorID id.VisitorID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE id = $1`, visitorID)
	if err != nil {
		return translatePgErr("delete visitor", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisitor(row rowScanner) (*models.Visitor, error) {
	var v models.Visitor
	err := row.Scan(
		&v.ID, &v.Name, &v.Company, &v.Purpose, &v.VisitDate, &v.VisitTime,
		&v.ContactPerson, &v.BadgeToken, &v.Notified, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// translatePgErr keeps the unavailable-vs-not-found distinction the services
// depend on: connection-level failures surface as ErrUnavailable, everything
// else passes through wrapped.
func translatePgErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08 — connection exception.
		if pqErr.Code.Class() == "08" {
			return fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)
		}
		return fmt.Errorf("%s: %w", op, pqErr)
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
