package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// FaultService manages fault tickets.
type FaultService struct {
	*env
	repo   repository.FaultRepository
	sites  repository.SiteRepository
	notify *NotificationService
}

// FaultInput opens a ticket.
type FaultInput struct {
	Baslik      string          `json:"baslik" validate:"required"`
	Aciklama    string          `json:"aciklama"`
	Konum       string          `json:"konum"`
	Saha        string          `json:"saha" validate:"required"`
	Oncelik     domain.Priority `json:"oncelik" validate:"required,oneof=dusuk orta yuksek acil"`
	AtananKisi  string          `json:"atananKisi"`
	Fotograflar []string        `json:"fotograflar"`
}

// FaultUpdate changes the given fields of a ticket.
type FaultUpdate struct {
	Baslik      *string             `json:"baslik"`
	Aciklama    *string             `json:"aciklama"`
	Konum       *string             `json:"konum"`
	Oncelik     *domain.Priority    `json:"oncelik"`
	Durum       *domain.FaultStatus `json:"durum"`
	AtananKisi  *string             `json:"atananKisi"`
	Fotograflar []string            `json:"fotograflar"`
}

// ResolveInput closes a ticket.
type ResolveInput struct {
	Aciklama    string   `json:"aciklama" validate:"required"`
	Fotograflar []string `json:"fotograflar"`
	Malzemeler  []string `json:"malzemeler"`
}

// DatePreset is a named creation date range of the fault list.
type DatePreset string

const (
	PresetAll    DatePreset = "all"
	PresetToday  DatePreset = "today"
	PresetWeek   DatePreset = "week"
	PresetMonth  DatePreset = "month"
	PresetCustom DatePreset = "custom"
)

// FaultQuery is the fault list and report filter.
type FaultQuery struct {
	Saha      string
	Durum     domain.FaultStatus
	Oncelik   domain.Priority
	Preset    DatePreset
	From      string // YYYY-MM-DD, custom only
	To        string // YYYY-MM-DD, custom only
	Search    string
	SortBy    domain.FaultSort
	Ascending bool
	Limit     int
	Offset    int
}

// unpaged drops paging so reports cover the whole filtered set.
func (q FaultQuery) unpaged() FaultQuery {
	q.Limit, q.Offset = 0, 0
	return q
}

// presetRange turns a preset into an instant range. Today, week and month
// all end with the current day.
func presetRange(q FaultQuery, now time.Time, loc *time.Location) (domain.TimeRange, error) {
	today := startOfDay(now, loc)
	end := today.AddDate(0, 0, 1)

	var from time.Time
	switch q.Preset {
	case "", PresetAll:
		return domain.TimeRange{}, nil
	case PresetToday:
		from = today
	case PresetWeek:
		from = now.AddDate(0, 0, -7)
	case PresetMonth:
		from = now.AddDate(0, 0, -30)
	case PresetCustom:
		if q.From == "" || q.To == "" {
			return domain.TimeRange{}, domain.NewValidationError("tarih", "Özel aralık için başlangıç ve bitiş tarihi gereklidir")
		}
		f, err := parseDay(q.From, loc)
		if err != nil {
			return domain.TimeRange{}, domain.NewValidationError("baslangic", "Başlangıç tarihi YYYY-AA-GG biçiminde olmalıdır")
		}
		t, err := parseDay(q.To, loc)
		if err != nil {
			return domain.TimeRange{}, domain.NewValidationError("bitis", "Bitiş tarihi YYYY-AA-GG biçiminde olmalıdır")
		}
		if t.Before(f) {
			return domain.TimeRange{}, domain.NewValidationError("tarih", "Bitiş tarihi başlangıçtan önce olamaz")
		}
		from, end = f, t.AddDate(0, 0, 1)
	default:
		return domain.TimeRange{}, domain.NewValidationError("tarih", "Geçersiz tarih aralığı")
	}
	return domain.TimeRange{From: &from, To: &end}, nil
}

func (s *FaultService) filter(p access.Principal, q FaultQuery) (domain.FaultFilter, error) {
	r, err := presetRange(q, s.now(), s.loc)
	if err != nil {
		return domain.FaultFilter{}, err
	}
	if q.Durum != "" && !q.Durum.Valid() {
		return domain.FaultFilter{}, domain.NewValidationError("durum", "Geçersiz durum")
	}
	if q.Oncelik != "" && !q.Oncelik.Valid() {
		return domain.FaultFilter{}, domain.NewValidationError("oncelik", "Geçersiz öncelik")
	}
	switch q.SortBy {
	case "", domain.SortByDate, domain.SortByStatus, domain.SortByPriority, domain.SortBySite:
	default:
		return domain.FaultFilter{}, domain.NewValidationError("sirala", "Geçersiz sıralama")
	}

	return domain.FaultFilter{
		Scope:     p.Scope().Narrow(q.Saha),
		Durum:     q.Durum,
		Oncelik:   q.Oncelik,
		Range:     r,
		Search:    strings.TrimSpace(q.Search),
		SortBy:    q.SortBy,
		Ascending: q.Ascending,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}, nil
}

// List returns the faults visible to p matching q.
func (s *FaultService) List(ctx context.Context, p access.Principal, q FaultQuery) ([]domain.Fault, error) {
	if err := p.Require(access.ReadAll); err != nil {
		return nil, err
	}
	f, err := s.filter(p, q)
	if err != nil {
		return nil, err
	}
	if f.Scope.Empty() {
		return []domain.Fault{}, nil
	}
	return s.repo.List(ctx, f)
}

// Get returns one fault if its site is visible to p.
func (s *FaultService) Get(ctx context.Context, p access.Principal, id string) (*domain.Fault, error) {
	fault, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.RequireSite(fault.Saha); err != nil {
		return nil, err
	}
	return fault, nil
}

// Create opens a ticket with status acik and notifies the managers.
func (s *FaultService) Create(ctx context.Context, p access.Principal, in FaultInput) (*domain.Fault, error) {
	if err := p.Require(access.CreateFault); err != nil {
		return nil, err
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	if err := p.RequireSite(in.Saha); err != nil {
		return nil, err
	}

	site, err := s.sites.Get(ctx, in.Saha)
	if err != nil {
		return nil, err
	}

	fault := domain.Fault{
		Baslik:           strings.TrimSpace(in.Baslik),
		Aciklama:         in.Aciklama,
		Konum:            in.Konum,
		Saha:             in.Saha,
		SahaAdi:          site.Ad,
		Oncelik:          in.Oncelik,
		Durum:            domain.StatusOpen,
		AtananKisi:       in.AtananKisi,
		Fotograflar:      in.Fotograflar,
		OlusturmaTarihi:  s.now(),
		OlusturanKisi:    p.UserID,
		OlusturanKisiAdi: p.Name,
	}

	if err := s.repo.Insert(ctx, &fault); err != nil {
		return nil, fmt.Errorf("create fault: %w", err)
	}

	s.changed()
	s.notify.FaultCreated(ctx, fault)
	logger.Info(fmt.Sprintf("✓ Fault opened: %s [%s] at %s", fault.Baslik, fault.Oncelik, fault.SahaAdi))
	return &fault, nil
}

// Update applies the non-nil fields of in. A status change notifies the
// ticket's creator.
func (s *FaultService) Update(ctx context.Context, p access.Principal, id string, in FaultUpdate) (*domain.Fault, error) {
	if err := p.Require(access.UpdateFault); err != nil {
		return nil, err
	}
	fault, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	previous := fault.Durum
	if in.Baslik != nil {
		fault.Baslik = strings.TrimSpace(*in.Baslik)
	}
	if in.Aciklama != nil {
		fault.Aciklama = *in.Aciklama
	}
	if in.Konum != nil {
		fault.Konum = *in.Konum
	}
	if in.Oncelik != nil {
		fault.Oncelik = *in.Oncelik
	}
	if in.Durum != nil {
		fault.Durum = *in.Durum
	}
	if in.AtananKisi != nil {
		fault.AtananKisi = *in.AtananKisi
	}
	if in.Fotograflar != nil {
		fault.Fotograflar = in.Fotograflar
	}
	if err := domain.Validate(fault); err != nil {
		return nil, err
	}
	if fault.Durum == domain.StatusResolved && fault.Cozum == nil {
		return nil, domain.NewValidationError("durum", "Arızayı çözmek için çözüm açıklaması girilmelidir")
	}

	now := s.now()
	fault.GuncellenmeTarihi = &now
	if err := s.repo.Update(ctx, fault); err != nil {
		return nil, fmt.Errorf("update fault %s: %w", id, err)
	}

	s.changed()
	if fault.Durum != previous {
		s.notify.FaultStatusChanged(ctx, *fault, p.UserID)
	}
	return fault, nil
}

// AddComment appends a comment and notifies the creator when someone
// else commented.
func (s *FaultService) AddComment(ctx context.Context, p access.Principal, id, message string) (*domain.Comment, error) {
	if err := p.Require(access.CommentFault); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.NewValidationError("mesaj", "Yorum boş olamaz")
	}
	fault, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	c := domain.Comment{
		ID:           uuid.New().String(),
		KullaniciID:  p.UserID,
		KullaniciAdi: p.Name,
		Mesaj:        message,
		Tarih:        s.now(),
	}
	if err := s.repo.AddComment(ctx, id, c); err != nil {
		return nil, fmt.Errorf("comment on fault %s: %w", id, err)
	}

	s.notify.FaultCommented(ctx, *fault, c)
	return &c, nil
}

// Resolve records the resolution and sets the status to cozuldu.
func (s *FaultService) Resolve(ctx context.Context, p access.Principal, id string, in ResolveInput) (*domain.Fault, error) {
	if err := p.Require(access.UpdateFault); err != nil {
		return nil, err
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	fault, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if fault.Durum == domain.StatusResolved {
		return nil, domain.NewValidationError("durum", "Arıza zaten çözülmüş")
	}

	now := s.now()
	previous := fault.Durum
	fault.Cozum = &domain.Resolution{
		Aciklama:         in.Aciklama,
		TamamlanmaTarihi: now,
		TamamlayanKisi:   p.Name,
		Fotograflar:      in.Fotograflar,
		Malzemeler:       in.Malzemeler,
	}
	fault.Durum = domain.StatusResolved
	fault.GuncellenmeTarihi = &now

	if err := s.repo.Update(ctx, fault); err != nil {
		return nil, fmt.Errorf("resolve fault %s: %w", id, err)
	}

	s.changed()
	if previous != fault.Durum {
		s.notify.FaultStatusChanged(ctx, *fault, p.UserID)
	}
	logger.Info(fmt.Sprintf("✓ Fault resolved: %s by %s", fault.ShortID(), p.Name))
	return fault, nil
}

// Delete removes a ticket.
func (s *FaultService) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := p.Require(access.DeleteFault); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed()
	return nil
}
