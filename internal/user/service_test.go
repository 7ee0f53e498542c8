package user

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendmarket/internal/auth"
)

type memoryRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	if _, exists := r.byEmail[u.Email]; exists {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = "user-" + strconv.Itoa(r.nextID)
	copied := *u
	r.byID[u.ID] = &copied
	r.byEmail[u.Email] = &copied
	return nil
}

func (r *memoryRepo) Update(_ context.Context, u *User) error {
	old, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, old.Email)
	copied := *u
	r.byID[u.ID] = &copied
	r.byEmail[u.Email] = &copied
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

// Low bcrypt cost keeps the tests fast.
func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptPasswordHasher(4))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		svc := newTestService(newMemoryRepo())

		u, err := svc.Register(ctx, "Alice@Example.com ", "password123", " Alice ")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, "Alice", u.DisplayName)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("empty email", func(t *testing.T) {
		svc := newTestService(newMemoryRepo())

		_, err := svc.Register(ctx, "   ", "password123", "Alice")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("password too short", func(t *testing.T) {
		svc := newTestService(newMemoryRepo())

		_, err := svc.Register(ctx, "alice@example.com", "short", "Alice")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := newTestService(newMemoryRepo())

		_, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ALICE@example.com", "password456", "Other Alice")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) Service {
		t.Helper()
		svc := newTestService(newMemoryRepo())
		_, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)
		return svc
	}

	t.Run("happy path", func(t *testing.T) {
		svc := setup(t)

		u, err := svc.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("email is normalized", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, " ALICE@example.com ", "password123")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "bob@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "alice@example.com", "  ")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(newMemoryRepo())
	u, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		name := "Alice B."
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{DisplayName: &name})
		require.NoError(t, err)

		assert.Equal(t, "Alice B.", updated.DisplayName)
		assert.Equal(t, "alice@example.com", updated.Email)
	})

	t.Run("email update is normalized", func(t *testing.T) {
		email := " NEW@Example.COM "
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)
	})

	t.Run("blank email rejected", func(t *testing.T) {
		email := "   "
		_, err := svc.Update(ctx, u.ID, UpdateRequest{Email: &email})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.Update(ctx, "missing", UpdateRequest{DisplayName: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(newMemoryRepo())
	u, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))

	_, err = svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrNotFound)
}
