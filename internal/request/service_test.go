package request

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendmarket/internal/user"
)

type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserService) Register(context.Context, string, string, string) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) Login(context.Context, string, string) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) Update(context.Context, string, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUserService) Delete(context.Context, string) error {
	panic("not used")
}

type fakeRequestRepo struct {
	requests map[string]*Request
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*Request)}
}

func (f *fakeRequestRepo) Create(_ context.Context, r *Request) error {
	f.nextID++
	r.ID = "request-" + strconv.Itoa(f.nextID)
	copied := *r
	f.requests[r.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRequestRepo) ListByRequester(_ context.Context, requesterID string) ([]*Request, error) {
	var out []*Request
	for _, r := range f.requests {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListOthers(_ context.Context, requesterID string, _ Filter) ([]*Request, int, error) {
	var out []*Request
	for _, r := range f.requests {
		if r.RequesterID != requesterID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func requestFixture() (*fakeRequestRepo, Service) {
	repo := newFakeRequestRepo()
	users := &fakeUserService{users: map[string]*user.User{
		"alice": {ID: "alice", DisplayName: "Alice"},
		"bob":   {ID: "bob", DisplayName: "Bob"},
	}}
	return repo, NewService(repo, users)
}

func TestRequestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		_, svc := requestFixture()

		r, err := svc.Create(ctx, "alice", "need a ladder")
		require.NoError(t, err)

		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "alice", r.RequesterID)
		assert.Equal(t, "need a ladder", r.Description)
	})

	t.Run("blank description", func(t *testing.T) {
		_, svc := requestFixture()

		_, err := svc.Create(ctx, "alice", "   ")
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, svc := requestFixture()

		_, err := svc.Create(ctx, "ghost", "need a ladder")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestRequestLists(t *testing.T) {
	ctx := context.Background()

	_, svc := requestFixture()
	_, err := svc.Create(ctx, "alice", "need a ladder")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", "need a tent")
	require.NoError(t, err)

	t.Run("own requests only", func(t *testing.T) {
		requests, err := svc.ListOwn(ctx, "alice")
		require.NoError(t, err)

		require.Len(t, requests, 1)
		assert.Equal(t, "need a ladder", requests[0].Description)
	})

	t.Run("others excludes own", func(t *testing.T) {
		requests, total, err := svc.ListOthers(ctx, "alice", Filter{})
		require.NoError(t, err)

		assert.Equal(t, 1, total)
		require.Len(t, requests, 1)
		assert.Equal(t, "need a tent", requests[0].Description)
	})

	t.Run("unknown viewer rejected", func(t *testing.T) {
		_, err := svc.ListOwn(ctx, "ghost")
		assert.ErrorIs(t, err, user.ErrNotFound)

		_, _, err = svc.ListOthers(ctx, "ghost", Filter{})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestRequestGetByID(t *testing.T) {
	ctx := context.Background()

	_, svc := requestFixture()
	r, err := svc.Create(ctx, "alice", "need a ladder")
	require.NoError(t, err)

	t.Run("any known user may view", func(t *testing.T) {
		got, err := svc.GetByID(ctx, r.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, r.ID, got.ID)
	})

	t.Run("unknown viewer rejected", func(t *testing.T) {
		_, err := svc.GetByID(ctx, r.ID, "ghost")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "missing", "alice")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
