package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"lendmarket/internal/pkg/metrics"
	"lendmarket/internal/user"
)

// CreateRequest carries the fields needed to create a booking.
type CreateRequest struct {
	ItemID   string
	BookerID string
	Start    time.Time
	End      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// Confirm applies the owner's decision to a waiting booking.
	Confirm(ctx context.Context, bookingID, actingUserID string, approve bool) (*Booking, error)

	// GetByID returns the booking if the viewer is its booker or the
	// owner of the booked item.
	GetByID(ctx context.Context, bookingID, viewerID string) (*Booking, error)

	ListByBooker(ctx context.Context, bookerID string, state StateFilter, f Filter) ([]*Booking, int, error)
	ListByOwner(ctx context.Context, ownerID string, state StateFilter, f Filter) ([]*Booking, int, error)

	// AnnotateItems computes last/next booking info for a set of items
	// in one batched fetch.
	AnnotateItems(ctx context.Context, itemIDs []string, now time.Time) (map[string]LastNext, error)

	// HasPastBooking reports whether the user had a booking of the item
	// starting before the given instant. Used to gate comments.
	HasPastBooking(ctx context.Context, userID, itemID string, before time.Time) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
	now         func() time.Time
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.userService.GetByID(ctx, req.BookerID); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemRef(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, ErrItemNotAvailable
	}

	approved, err := s.repo.FindApprovedForItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if HasConflict(req.Start, req.End, approved) {
		return nil, ErrItemNotAvailable
	}

	if item.OwnerID == req.BookerID {
		return nil, ErrOwnBooking
	}

	b := &Booking{
		ItemID:   item.ID,
		ItemName: item.Name,
		OwnerID:  item.OwnerID,
		BookerID: req.BookerID,
		Start:    req.Start,
		End:      req.End,
		Status:   StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	log.Info().Str("booking_id", b.ID).Str("item_id", b.ItemID).Msg("booking created")
	return b, nil
}

func (s *service) Confirm(ctx context.Context, bookingID, actingUserID string, approve bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.userService.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	if b.Status != StatusWaiting {
		return nil, ErrAlreadyDecided
	}

	if b.OwnerID != actingUserID {
		return nil, ErrNotItemOwner
	}

	next, err := Decide(b.Status, approve)
	if err != nil {
		return nil, err
	}

	// The guarded update is what makes concurrent decisions safe: if
	// another request decided this booking between our read and now,
	// zero rows match and we report the booking as already decided.
	ok, err := s.repo.Transition(ctx, b.ID, StatusWaiting, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyDecided
	}

	b.Status = next
	metrics.IncBookingConfirmed(string(next))
	log.Info().Str("booking_id", b.ID).Str("status", string(next)).Msg("booking decided")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, bookingID, viewerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if viewerID != b.BookerID && viewerID != b.OwnerID {
		return nil, ErrAccessDenied
	}

	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, bookerID string, state StateFilter, f Filter) ([]*Booking, int, error) {
	if _, err := s.userService.GetByID(ctx, bookerID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByBooker(ctx, bookerID, state, s.now(), f)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, state StateFilter, f Filter) ([]*Booking, int, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByOwner(ctx, ownerID, state, s.now(), f)
}

func (s *service) AnnotateItems(ctx context.Context, itemIDs []string, now time.Time) (map[string]LastNext, error) {
	bookings, err := s.repo.FindForItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	return Annotate(bookings, now), nil
}

func (s *service) HasPastBooking(ctx context.Context, userID, itemID string, before time.Time) (bool, error) {
	return s.repo.HasBookingStartedBefore(ctx, userID, itemID, before)
}
