// Package notifications is the current user's view of the notification
// collection.
package notifications

import (
	"context"
	"fmt"
	"slices"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// Identity names the user the reader acts for.
type Identity interface {
	CurrentEmail() (string, bool)
}

// Fixed is an Identity that always answers with the same email. An empty
// email means nobody.
type Fixed string

func (f Fixed) CurrentEmail() (string, bool) {
	return string(f), f != ""
}

// Source is the part of the domain store the reader needs.
type Source interface {
	NotificationsFor(email string) []model.Notification
	FindNotification(id string) (*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, email string) (int, error)
}

type Reader struct {
	src Source
	id  Identity
}

func NewReader(src Source, id Identity) *Reader {
	return &Reader{src: src, id: id}
}

// List returns the current user's notifications newest first. Records with
// the same creation time keep reverse insertion order.
func (r *Reader) List(_ context.Context) ([]model.Notification, error) {
	email, ok := r.id.CurrentEmail()
	if !ok {
		return nil, nil
	}
	out := r.src.NotificationsFor(email)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b model.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *Reader) UnreadCount(_ context.Context) (int, error) {
	email, ok := r.id.CurrentEmail()
	if !ok {
		return 0, nil
	}
	count := 0
	for _, n := range r.src.NotificationsFor(email) {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips one of the current user's notifications. Someone else's
// notification is reported as not found.
func (r *Reader) MarkRead(ctx context.Context, id string) error {
	email, ok := r.id.CurrentEmail()
	if !ok {
		return fmt.Errorf("no current user: %w", errdefs.ErrAuthentication)
	}
	n, err := r.src.FindNotification(id)
	if err != nil {
		return err
	}
	if n.UserEmail != email {
		return fmt.Errorf("notification %s: %w", id, errdefs.ErrNotFound)
	}
	return r.src.MarkNotificationRead(ctx, id)
}

// MarkAllRead returns how many notifications changed.
func (r *Reader) MarkAllRead(ctx context.Context) (int, error) {
	email, ok := r.id.CurrentEmail()
	if !ok {
		return 0, fmt.Errorf("no current user: %w", errdefs.ErrAuthentication)
	}
	return r.src.MarkAllNotificationsRead(ctx, email)
}
