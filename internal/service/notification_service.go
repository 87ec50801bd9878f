package service

import (
	"context"
	"fmt"
	"html"

	"edeon_enerji/internal/access"
	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// NotificationService stores in-app notifications and sends mail for
// urgent faults.
type NotificationService struct {
	*env
	repo   repository.NotificationRepository
	users  repository.UserRepository
	mailer Mailer
}

// List returns p's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, p access.Principal, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.repo.ListForUser(ctx, p.UserID, unreadOnly, limit)
}

// MarkRead marks one of p's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, p access.Principal, id string) error {
	return s.repo.MarkRead(ctx, p.UserID, id)
}

// MarkAllRead marks all of p's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, p access.Principal) (int64, error) {
	return s.repo.MarkAllRead(ctx, p.UserID)
}

// send delivers n to every user id except the author. Failures are
// logged; notifications never fail the operation that caused them.
func (s *NotificationService) send(ctx context.Context, userIDs []string, author string, n domain.Notification) {
	items := make([]domain.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" || id == author {
			continue
		}
		item := n
		item.KullaniciID = id
		item.Tarih = s.now()
		items = append(items, item)
	}
	if len(items) == 0 {
		return
	}
	if err := s.repo.InsertMany(ctx, items); err != nil {
		logger.Error(fmt.Sprintf("❌ Notification insert failed (%s, %d users): %v", n.Tip, len(items), err))
	}
}

// FaultCreated notifies the managers, and mails them when the fault is
// urgent.
func (s *NotificationService) FaultCreated(ctx context.Context, f domain.Fault) {
	managers, err := s.users.List(ctx, domain.RoleManager)
	if err != nil {
		logger.Error(fmt.Sprintf("❌ Manager lookup failed for fault notification: %v", err))
		return
	}

	ids := make([]string, 0, len(managers))
	emails := make([]string, 0, len(managers))
	for _, m := range managers {
		ids = append(ids, m.ID.Hex())
		if m.Email != "" {
			emails = append(emails, m.Email)
		}
	}

	s.send(ctx, ids, f.OlusturanKisi, domain.Notification{
		Baslik: "Yeni Arıza: " + f.Baslik,
		Mesaj:  fmt.Sprintf("%s sahasında %s öncelikli arıza bildirildi", f.SahaAdi, f.Oncelik.Label()),
		Tip:    domain.NotifyFault,
		Link:   faultLink(f),
	})

	if f.Oncelik != domain.PriorityUrgent || s.mailer == nil || len(emails) == 0 {
		return
	}
	body := fmt.Sprintf("<p><b>%s</b></p><p>Saha: %s</p><p>%s</p><p>Bildiren: %s</p>",
		html.EscapeString(f.Baslik),
		html.EscapeString(f.SahaAdi),
		html.EscapeString(f.Aciklama),
		html.EscapeString(f.OlusturanKisiAdi))
	if err := s.mailer.Send(ctx, emails, "ACİL ARIZA: "+f.Baslik, body); err != nil {
		logger.Error(fmt.Sprintf("❌ Urgent fault mail failed: %v", err))
	}
}

// FaultStatusChanged notifies the creator of the ticket.
func (s *NotificationService) FaultStatusChanged(ctx context.Context, f domain.Fault, author string) {
	s.send(ctx, []string{f.OlusturanKisi}, author, domain.Notification{
		Baslik: "Arıza durumu güncellendi",
		Mesaj:  fmt.Sprintf("%s: %s", f.Baslik, f.Durum.Label()),
		Tip:    domain.NotifyStatus,
		Link:   faultLink(f),
	})
}

// FaultCommented notifies the creator of the ticket.
func (s *NotificationService) FaultCommented(ctx context.Context, f domain.Fault, c domain.Comment) {
	s.send(ctx, []string{f.OlusturanKisi}, c.KullaniciID, domain.Notification{
		Baslik: "Yeni yorum: " + f.Baslik,
		Mesaj:  fmt.Sprintf("%s: %s", c.KullaniciAdi, c.Mesaj),
		Tip:    domain.NotifyComment,
		Link:   faultLink(f),
	})
}

func faultLink(f domain.Fault) string {
	return "/arizalar/" + f.ID.Hex()
}
