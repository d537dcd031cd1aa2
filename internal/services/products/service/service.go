// Package service implements the product catalog service
package service

import (
	"context"
	"strings"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/products/domain"
)

// Service implements domain.AdminPort over a repo
type Service struct {
	repo dom.Repo
	log  logger.Logger
}

// New constructs the products service
func New(repo dom.Repo, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// FindByBarcode implements domain.LookupPort
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (dom.Record, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return dom.Record{}, perr.InvalidArgf("empty barcode")
	}
	return s.repo.FindByBarcode(ctx, barcode)
}

// List implements domain.AdminPort
func (s *Service) List(ctx context.Context) ([]dom.Record, error) {
	return s.repo.List(ctx)
}

// Create implements domain.AdminPort
func (s *Service) Create(ctx context.Context, in dom.CreateInput) (dom.Record, error) {
	rec := dom.Record{
		Barcode:     strings.TrimSpace(in.Barcode),
		ProductName: strings.TrimSpace(in.ProductName),
		Brand:       strings.TrimSpace(in.Brand),
		Allergies:   strings.TrimSpace(in.Allergies),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if rec.Barcode == "" {
		return dom.Record{}, perr.WithField(perr.Validationf("barcode must not be blank"), "barcode")
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
			return dom.Record{}, perr.WithField(
				perr.DuplicateKeyf("barcode %q already registered", rec.Barcode), "barcode")
		}
		return dom.Record{}, err
	}
	s.log.Info().Str("barcode", rec.Barcode).Str("product", rec.ProductName).Msg("product registered")
	return rec, nil
}

// Update implements domain.AdminPort
func (s *Service) Update(ctx context.Context, barcode string, in dom.UpdateInput) (dom.Record, error) {
	rec := dom.Record{
		Barcode:     strings.TrimSpace(barcode),
		ProductName: strings.TrimSpace(in.ProductName),
		Brand:       strings.TrimSpace(in.Brand),
		Allergies:   strings.TrimSpace(in.Allergies),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if rec.Barcode == "" {
		return dom.Record{}, perr.InvalidArgf("empty barcode")
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return dom.Record{}, err
	}
	return rec, nil
}

// Delete implements domain.AdminPort
func (s *Service) Delete(ctx context.Context, barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return perr.InvalidArgf("empty barcode")
	}
	if err := s.repo.Delete(ctx, barcode); err != nil {
		return err
	}
	s.log.Info().Str("barcode", barcode).Msg("product removed")
	return nil
}

var _ dom.AdminPort = (*Service)(nil)
