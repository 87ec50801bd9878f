package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// StockService manages spare part stock.
type StockService struct {
	*env
	repo repository.StockRepository
}

// List returns the items visible to p.
func (s *StockService) List(ctx context.Context, p access.Principal, sahaID string, criticalOnly bool) ([]domain.StockItem, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	scope := p.Scope()
	if scope.Empty() {
		return []domain.StockItem{}, nil
	}
	return s.repo.List(ctx, domain.StockFilter{Scope: scope, SahaID: sahaID, CriticalOnly: criticalOnly})
}

// Get returns one item.
func (s *StockService) Get(ctx context.Context, p access.Principal, id string) (*domain.StockItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.SahaID != "" {
		if err := p.RequireSite(item.SahaID); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Create stores an item.
func (s *StockService) Create(ctx context.Context, p access.Principal, in domain.StockItem) (*domain.StockItem, error) {
	if err := p.Require(access.WriteStock); err != nil {
		return nil, err
	}
	in.Ad = strings.TrimSpace(in.Ad)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	item := in
	item.ID = primitive.NilObjectID
	item.OlusturmaTarihi = s.now()
	item.GuncellenmeTarihi = nil
	if err := s.repo.Insert(ctx, &item); err != nil {
		return nil, fmt.Errorf("create stock item: %w", err)
	}
	s.changed()
	return &item, nil
}

// Update replaces the editable fields of an item.
func (s *StockService) Update(ctx context.Context, p access.Principal, id string, in domain.StockItem) (*domain.StockItem, error) {
	if err := p.Require(access.WriteStock); err != nil {
		return nil, err
	}
	in.Ad = strings.TrimSpace(in.Ad)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item := in
	item.ID = existing.ID
	item.OlusturmaTarihi = existing.OlusturmaTarihi
	now := s.now()
	item.GuncellenmeTarihi = &now
	if err := s.repo.Update(ctx, &item); err != nil {
		return nil, fmt.Errorf("update stock item %s: %w", id, err)
	}
	s.changed()
	return &item, nil
}

// Adjust adds delta to the quantity. Stock never goes negative.
func (s *StockService) Adjust(ctx context.Context, p access.Principal, id string, delta float64) (*domain.StockItem, error) {
	if err := p.Require(access.WriteStock); err != nil {
		return nil, err
	}
	if delta == 0 {
		return nil, domain.NewValidationError("miktar", "Değişim miktarı sıfır olamaz")
	}
	item, err := s.repo.Adjust(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	s.changed()
	if item.Critical() {
		logger.Warn(fmt.Sprintf("stock %s at critical level: %.2f %s", item.Ad, item.Miktar, item.Birim))
	}
	return item, nil
}

// Delete removes an item.
func (s *StockService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.Require(access.WriteStock); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed()
	return nil
}
