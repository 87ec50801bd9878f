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

// SiteService manages sites.
type SiteService struct {
	*env
	repo  repository.SiteRepository
	users repository.UserRepository
}

// List returns the sites visible to p.
func (s *SiteService) List(ctx context.Context, p access.Principal) ([]domain.Site, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	scope := p.Scope()
	if scope.Empty() {
		return []domain.Site{}, nil
	}
	return s.repo.List(ctx, scope)
}

// Get returns one site.
func (s *SiteService) Get(ctx context.Context, p access.Principal, id string) (*domain.Site, error) {
	if err := p.RequireSite(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Create stores a site.
func (s *SiteService) Create(ctx context.Context, p access.Principal, in domain.Site) (*domain.Site, error) {
	if err := p.Require(access.WriteSite); err != nil {
		return nil, err
	}
	in.Ad = strings.TrimSpace(in.Ad)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	site := in
	site.ID = primitive.NilObjectID
	site.OlusturmaTarihi = s.now()
	if err := s.repo.Insert(ctx, &site); err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}
	s.changed()
	return &site, nil
}

// Update replaces the editable fields of a site.
func (s *SiteService) Update(ctx context.Context, p access.Principal, id string, in domain.Site) (*domain.Site, error) {
	if err := p.Require(access.WriteSite); err != nil {
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

	site := in
	site.ID = existing.ID
	site.OlusturmaTarihi = existing.OlusturmaTarihi
	if err := s.repo.Update(ctx, &site); err != nil {
		return nil, fmt.Errorf("update site %s: %w", id, err)
	}
	s.changed()
	return &site, nil
}

// Delete removes a site and unlinks it from every customer.
func (s *SiteService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.Require(access.DeleteSite); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.users.PullSite(ctx, id); err != nil {
		logger.Warn(fmt.Sprintf("site %s deleted but customer links remain: %v", id, err))
	}
	s.changed()
	return nil
}
