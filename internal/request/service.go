package request

import (
	"context"
	"strings"

	"lendmarket/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID, description string) (*Request, error)

	// ListOwn returns the user's requests with their fulfilling items.
	ListOwn(ctx context.Context, requesterID string) ([]*Request, error)

	// ListOthers returns other users' requests, newest first.
	ListOthers(ctx context.Context, viewerID string, f Filter) ([]*Request, int, error)

	GetByID(ctx context.Context, requestID, viewerID string) (*Request, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*Request, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &Request{
		RequesterID: requesterID,
		Description: description,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*Request, error) {
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListByRequester(ctx, requesterID)
}

func (s *service) ListOthers(ctx context.Context, viewerID string, f Filter) ([]*Request, int, error) {
	if _, err := s.userService.GetByID(ctx, viewerID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListOthers(ctx, viewerID, f)
}

func (s *service) GetByID(ctx context.Context, requestID, viewerID string) (*Request, error) {
	if _, err := s.userService.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, requestID)
}
