package item

import (
	"context"
	"strings"
	"time"

	"lendmarket/internal/booking"
	"lendmarket/internal/user"
)

// BookingReader is the slice of the booking service the item module
// consumes: batched last/next annotation and the comment gate.
type BookingReader interface {
	AnnotateItems(ctx context.Context, itemIDs []string, now time.Time) (map[string]booking.LastNext, error)
	HasPastBooking(ctx context.Context, userID, itemID string, before time.Time) (bool, error)
}

// CreateRequest carries the fields needed to list an item.
type CreateRequest struct {
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateRequest carries a partial item update; nil fields are left
// unchanged.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)

	// Update applies a partial update. Only the owner may update; any
	// other caller gets ErrNotItemOwner.
	Update(ctx context.Context, itemID, actorID string, req UpdateRequest) (*Info, error)

	// GetInfo returns the item with its comments. Last/next booking
	// info is attached only when the viewer is the owner, so booking
	// schedules are never leaked to other users.
	GetInfo(ctx context.Context, itemID, viewerID string) (*Info, error)

	// ListByOwner returns the owner's items, each annotated with its
	// last and next booking.
	ListByOwner(ctx context.Context, ownerID string, f Filter) ([]*Info, int, error)

	Search(ctx context.Context, text string, f Filter) ([]*Item, int, error)

	// AddComment lets a user who previously booked the item leave a
	// comment on it.
	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	userService user.Service
	bookings    BookingReader
	now         func() time.Time
}

func NewService(repo Repository, userService user.Service, bookings BookingReader) Service {
	return &service{
		repo:        repo,
		userService: userService,
		bookings:    bookings,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	if _, err := s.userService.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	i := &Item{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *service) Update(ctx context.Context, itemID, actorID string, req UpdateRequest) (*Info, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if i.OwnerID != actorID {
		return nil, ErrNotItemOwner
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		i.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}

	return s.GetInfo(ctx, itemID, actorID)
}

func (s *service) GetInfo(ctx context.Context, itemID, viewerID string) (*Info, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	info := &Info{Item: *i}

	comments, err := s.repo.ListComments(ctx, itemID)
	if err != nil {
		return nil, err
	}
	info.Comments = comments

	if i.OwnerID == viewerID {
		annotations, err := s.bookings.AnnotateItems(ctx, []string{i.ID}, s.now())
		if err != nil {
			return nil, err
		}
		if ann, ok := annotations[i.ID]; ok {
			info.LastBooking = ann.Last
			info.NextBooking = ann.Next
		}
	}

	return info, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, f Filter) ([]*Info, int, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, 0, err
	}

	items, total, err := s.repo.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(items))
	for idx, i := range items {
		ids[idx] = i.ID
	}

	// One batched fetch for all items on the page; grouping happens in
	// memory rather than one booking query per item.
	annotations, err := s.bookings.AnnotateItems(ctx, ids, s.now())
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*Info, len(items))
	for idx, i := range items {
		info := &Info{Item: *i}
		if ann, ok := annotations[i.ID]; ok {
			info.LastBooking = ann.Last
			info.NextBooking = ann.Next
		}
		infos[idx] = info
	}

	return infos, total, nil
}

func (s *service) Search(ctx context.Context, text string, f Filter) ([]*Item, int, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, 0, nil
	}
	return s.repo.Search(ctx, text, f)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}

	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	booked, err := s.bookings.HasPastBooking(ctx, authorID, itemID, s.now())
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrDidNotBook
	}

	c := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.DisplayName,
		Text:       text,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}
