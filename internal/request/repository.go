package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendmarket/internal/item"
)

// Repository defines storage access for item requests. All reads
// return requests with their fulfilling items attached, fetched in one
// batched query per call rather than per request.
type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*Request, error)

	// ListOthers returns requests made by anyone except the given user,
	// newest first.
	ListOthers(ctx context.Context, requesterID string, f Filter) ([]*Request, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const requestColumns = "id, requester_id, description, created_at"

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	query, args, err := psql.Insert("public.requests").
		Columns("requester_id", "description").
		Values(req.RequesterID, req.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	query, args, err := psql.Select(requestColumns).
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query: %w", err)
	}

	var req Request
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	if err := r.attachItems(ctx, []*Request{&req}); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string) ([]*Request, error) {
	query, args, err := psql.Select(requestColumns).
		From("public.requests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	requests, err := scanRequests(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *pgxRepository) ListOthers(ctx context.Context, requesterID string, f Filter) ([]*Request, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	query, args, err := psql.Select(requestColumns, "count(*) OVER() AS total_count").
		From("public.requests").
		Where(squirrel.NotEq{"requester_id": requesterID}).
		OrderBy("created_at DESC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list other requests query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list other requests: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	var total int
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, &req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func scanRequests(rows pgx.Rows) ([]*Request, error) {
	var requests []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.Description, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// attachItems loads the fulfilling items for all given requests in one
// query and distributes them by request id.
func (r *pgxRepository) attachItems(ctx context.Context, requests []*Request) error {
	if len(requests) == 0 {
		return nil
	}

	byID := make(map[string]*Request, len(requests))
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		byID[req.ID] = req
		ids = append(ids, req.ID)
	}

	query, args, err := psql.Select(
		"id", "owner_id", "name", "description", "available", "request_id", "created_at",
	).
		From("public.items").
		Where(squirrel.Eq{"request_id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build request items query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list request items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var i item.Item
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Available, &i.RequestID, &i.CreatedAt); err != nil {
			return fmt.Errorf("scan request item: %w", err)
		}
		if i.RequestID != nil {
			if req, ok := byID[*i.RequestID]; ok {
				req.Items = append(req.Items, &i)
			}
		}
	}

	return rows.Err()
}
