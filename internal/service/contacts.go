package service

import (
	"context"
	"time"

	"taskflow/internal/logger"
	"taskflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactInput struct {
	Name              string
	Email             string
	Phone             string
	Address           string
	CompanyName       string
	DateOfBirth       string
	DateOfAnniversary string
	Categories        []string
}

// CreateContact persists a new contact. Name and phone are the only
// required fields.
func (s *Service) CreateContact(ctx context.Context, v models.Viewer, in ContactInput) (*models.Contact, error) {
	if _, berr := s.requireActor(v); berr != nil {
		return nil, berr
	}
	if in.Name == "" || in.Phone == "" {
		return nil, NewValidationError("contact", "name and phone are required")
	}

	contact := models.Contact{
		ID:                uuid.NewString(),
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		Address:           in.Address,
		CompanyName:       in.CompanyName,
		DateOfBirth:       in.DateOfBirth,
		DateOfAnniversary: in.DateOfAnniversary,
		Categories:        append([]string(nil), in.Categories...),
		CreatedAt:         time.Now(),
	}
	if err := s.store.SaveContact(ctx, contact); err != nil {
		logger.Error("Service: create contact failed", err)
		return nil, NewPersistenceError("create contact", err)
	}

	logger.Info("Service: contact created", zap.String("contact_id", contact.ID))
	return &contact, nil
}

// Categories returns the unique category strings across all contacts,
// in first-seen order. Blank categories are skipped.
func (s *Service) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, c := range s.store.Contacts() {
		for _, cat := range c.Categories {
			if cat == "" {
				continue
			}
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			categories = append(categories, cat)
		}
	}
	return categories
}
