// Package service orchestrates the visitor registration lifecycle.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

// Store abstracts visitor persistence. FindAll never errors on an empty
// store; FindByID distinguishes not-found from store-unavailable.
type Store interface {
	Create(ctx context.Context, v *models.Visitor) error
	FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	FindAll(ctx context.Context) ([]*models.Visitor, error)
	Update(ctx context.Context, v *models.Visitor) error
	Delete(ctx context.Context, visitorID id.VisitorID) error
}

// VisitorService handles visitor CRUD. Badge issuance and notification live
// in the badge service; this layer owns only record lifecycle.
type VisitorService struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *VisitorService {
	return &VisitorService{store: store, logger: logger}
}

// RegisterInput carries the fields collected at the reception desk.
type RegisterInput struct {
	Name          string
	Company       string
	Purpose       string
	VisitDate     time.Time
	VisitTime     string
	ContactPerson string
}

func (s *VisitorService) Register(ctx context.Context, in RegisterInput) (*models.Visitor, error) {
	now := requestcontext.Now(ctx)
	v, err := models.NewVisitor(in.Name, in.Company, in.Purpose, in.VisitDate, in.VisitTime, in.ContactPerson, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, wrapStoreErr(err, "failed to register visitor")
	}

	s.logger.InfoContext(ctx, "visitor registered",
		"visitor_id", v.ID,
		"company", v.Company,
		"visit_date", v.VisitDate.Format("2006-01-02"),
	)
	return v, nil
}

func (s *VisitorService) Get(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	v, err := s.store.FindByID(ctx, visitorID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load visitor")
	}
	return v, nil
}

func (s *VisitorService) List(ctx context.Context) ([]*models.Visitor, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to list visitors")
	}
	return all, nil
}

// UpdateInput applies partial updates; zero values leave fields untouched.
type UpdateInput struct {
	Company       *string
	Purpose       *string
	VisitDate     *time.Time
	VisitTime     *string
	ContactPerson *string
}

func (s *VisitorService) Update(ctx context.Context, visitorID id.VisitorID, in UpdateInput) (*models.Visitor, error) {
	v, err := s.store.FindByID(ctx, visitorID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load visitor")
	}

	if in.Company != nil {
		v.Company = *in.Company
	}
	if in.Purpose != nil {
		v.Purpose = *in.Purpose
	}
	if in.VisitDate != nil {
		v.VisitDate = *in.VisitDate
	}
	if in.VisitTime != nil {
		v.VisitTime = *in.VisitTime
	}
	if in.ContactPerson != nil {
		v.ContactPerson = *in.ContactPerson
	}
	v.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.Update(ctx, v); err != nil {
		return nil, wrapStoreErr(err, "failed to update visitor")
	}
	return v, nil
}

func (s *VisitorService) Delete(ctx context.Context, visitorID id.VisitorID) error {
	if err := s.store.Delete(ctx, visitorID); err != nil {
		return wrapStoreErr(err, "failed to delete visitor")
	}
	s.logger.InfoContext(ctx, "visitor deleted", "visitor_id", visitorID)
	return nil
}

// wrapStoreErr translates store sentinels into coded domain errors.
func wrapStoreErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "visitor not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "visitor store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
