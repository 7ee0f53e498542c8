package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for bookings. The item lookup
// lives here too: the booking flow only ever needs the owner and the
// availability flag, both read from the items table directly.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// Transition moves a booking from one status to another in a single
	// guarded statement. It returns false when the booking was not in
	// the expected status anymore, which is how a concurrent decision
	// on the same booking is detected.
	Transition(ctx context.Context, id string, from, to Status) (bool, error)

	FindApprovedForItem(ctx context.Context, itemID string) ([]*Booking, error)

	// FindForItems fetches bookings for all given items in one query.
	FindForItems(ctx context.Context, itemIDs []string) ([]*Booking, error)

	ListByBooker(ctx context.Context, bookerID string, state StateFilter, now time.Time, f Filter) ([]*Booking, int, error)
	ListByOwner(ctx context.Context, ownerID string, state StateFilter, now time.Time, f Filter) ([]*Booking, int, error)

	// HasBookingStartedBefore reports whether the user has any booking
	// of the item whose start precedes the given instant.
	HasBookingStartedBefore(ctx context.Context, bookerID, itemID string, before time.Time) (bool, error)

	GetItemRef(ctx context.Context, itemID string) (*ItemRef, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a Repository backed by pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const bookingColumns = "b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.display_name, " +
	"b.start_time, b.end_time, b.status, b.created_at, b.updated_at"

func bookingSelect() squirrel.SelectBuilder {
	return psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) Transition(ctx context.Context, id string, from, to Status) (bool, error) {
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build transition query: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("transition booking: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) FindApprovedForItem(ctx context.Context, itemID string) ([]*Booking, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemID, "b.status": StatusApproved}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approved bookings query: %w", err)
	}

	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) FindForItems(ctx context.Context, itemIDs []string) ([]*Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.item_id": itemIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bookings for items query: %w", err)
	}

	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, state StateFilter, now time.Time, f Filter) ([]*Booking, int, error) {
	return r.list(ctx, squirrel.Eq{"b.booker_id": bookerID}, state, now, f)
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, state StateFilter, now time.Time, f Filter) ([]*Booking, int, error) {
	return r.list(ctx, squirrel.Eq{"i.owner_id": ownerID}, state, now, f)
}

func (r *pgxRepository) list(ctx context.Context, identity squirrel.Sqlizer, state StateFilter, now time.Time, f Filter) ([]*Booking, int, error) {
	query := psql.Select(bookingColumns, "count(*) OVER() AS total_count").
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(identity)

	if pred := state.Predicate(now); pred != nil {
		query = query.Where(pred)
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	query = query.
		OrderBy("b.start_time DESC").
		Limit(uint64(f.PageSize)).
		Offset(uint64((f.Page - 1) * f.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, rows.Err()
}

func (r *pgxRepository) HasBookingStartedBefore(ctx context.Context, bookerID, itemID string, before time.Time) (bool, error) {
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"booker_id": bookerID, "item_id": itemID}).
		Where(squirrel.Lt{"start_time": before}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build past booking query: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check past booking: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) GetItemRef(ctx context.Context, itemID string) (*ItemRef, error) {
	query, args, err := psql.Select("id", "name", "owner_id", "available").
		From("public.items").
		Where(squirrel.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item ref query: %w", err)
	}

	var ref ItemRef
	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&ref.ID, &ref.Name, &ref.OwnerID, &ref.Available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get item ref: %w", err)
	}
	return &ref, nil
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}
