package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/reconcile"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// PlantService manages plants and their targets.
type PlantService struct {
	*env
	repo       repository.PlantRepository
	production repository.ProductionRepository
	users      repository.UserRepository
}

// DeleteResult reports what a cascading plant delete removed.
type DeleteResult struct {
	ProductionRemoved int64 `json:"silinenUretimKaydi"`
	UsersUpdated      int64 `json:"guncellenenKullanici"`
}

// List returns the plants visible to p.
func (s *PlantService) List(ctx context.Context, p access.Principal) ([]domain.Plant, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	scope := p.Scope()
	if scope.Empty() {
		return []domain.Plant{}, nil
	}
	return s.repo.List(ctx, domain.PlantFilter{Scope: scope})
}

// Get returns one plant if p may see it.
func (s *PlantService) Get(ctx context.Context, p access.Principal, id string) (*domain.Plant, error) {
	if err := p.RequireSite(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Create stores a plant. Without explicit monthly targets they are
// derived from the yearly target. A customer id links the plant to that
// customer's site list.
func (s *PlantService) Create(ctx context.Context, p access.Principal, in domain.Plant) (*domain.Plant, error) {
	if err := p.Require(access.WritePlant); err != nil {
		return nil, err
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	plant := in
	plant.ID = primitive.NilObjectID
	plant.AylikHedefler = resolveTargets(plant.YillikHedefUretim, plant.AylikHedefler)
	plant.OlusturmaTarihi = s.now()
	plant.GuncellenmeTarihi = nil

	if err := s.repo.Insert(ctx, &plant); err != nil {
		return nil, fmt.Errorf("create plant: %w", err)
	}

	if plant.MusteriID != "" {
		if err := s.users.AddSite(ctx, plant.MusteriID, plant.IDHex()); err != nil {
			logger.Warn(fmt.Sprintf("plant %s created but customer %s not linked: %v", plant.IDHex(), plant.MusteriID, err))
		}
	}

	s.changed()
	logger.Info(fmt.Sprintf("✓ Plant created: %s (%s, %.1f kWp)", plant.Ad, plant.IDHex(), plant.Kapasite))
	return &plant, nil
}

// Update replaces the editable fields of a plant.
func (s *PlantService) Update(ctx context.Context, p access.Principal, id string, in domain.Plant) (*domain.Plant, error) {
	if err := p.Require(access.WritePlant); err != nil {
		return nil, err
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plant := in
	plant.ID = existing.ID
	plant.OlusturmaTarihi = existing.OlusturmaTarihi
	plant.AylikHedefler = resolveTargets(plant.YillikHedefUretim, plant.AylikHedefler)
	now := s.now()
	plant.GuncellenmeTarihi = &now

	if err := s.repo.Update(ctx, &plant); err != nil {
		return nil, fmt.Errorf("update plant %s: %w", id, err)
	}

	if existing.MusteriID != "" && existing.MusteriID != plant.MusteriID {
		if err := s.users.RemoveSite(ctx, existing.MusteriID, id); err != nil {
			logger.Warn(fmt.Sprintf("plant %s updated but former customer %s not unlinked: %v", id, existing.MusteriID, err))
		}
	}
	if plant.MusteriID != "" && plant.MusteriID != existing.MusteriID {
		if err := s.users.AddSite(ctx, plant.MusteriID, id); err != nil {
			logger.Warn(fmt.Sprintf("plant %s updated but customer %s not linked: %v", id, plant.MusteriID, err))
		}
	}

	s.changed()
	return &plant, nil
}

// Delete removes a plant together with its production records and
// unlinks it from every customer. The steps are not atomic; a failure
// part way reports what was already done.
func (s *PlantService) Delete(ctx context.Context, p access.Principal, id string) (DeleteResult, error) {
	var res DeleteResult
	if err := p.Require(access.DeletePlant); err != nil {
		return res, err
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return res, err
	}

	removed, err := s.production.DeleteByPlant(ctx, id)
	if err != nil {
		return res, fmt.Errorf("delete production of plant %s: %w", id, err)
	}
	res.ProductionRemoved = removed

	if err := s.repo.Delete(ctx, id); err != nil {
		return res, fmt.Errorf("delete plant %s: %w", id, err)
	}

	updated, err := s.users.PullSite(ctx, id)
	if err != nil {
		logger.Warn(fmt.Sprintf("plant %s deleted but customer links remain: %v", id, err))
	}
	res.UsersUpdated = updated

	s.changed()
	logger.Info(fmt.Sprintf("✓ Plant deleted: %s (%d production records)", id, removed))
	return res, nil
}

// Targets returns the effective monthly targets of a plant.
func (s *PlantService) Targets(ctx context.Context, p access.Principal, id string) (reconcile.MonthlyTargets, error) {
	plant, err := s.Get(ctx, p, id)
	if err != nil {
		return reconcile.MonthlyTargets{}, err
	}
	return plant.Targets(), nil
}

func resolveTargets(yearly float64, override *reconcile.MonthlyTargets) *reconcile.MonthlyTargets {
	t := reconcile.EffectiveTargets(yearly, override)
	return &t
}
