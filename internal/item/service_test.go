package item

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendmarket/internal/booking"
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

type fakeItemRepo struct {
	items    map[string]*Item
	comments map[string][]*Comment
	nextID   int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:    make(map[string]*Item),
		comments: make(map[string][]*Comment),
	}
}

func (f *fakeItemRepo) Create(_ context.Context, i *Item) error {
	f.nextID++
	i.ID = "item-" + strconv.Itoa(f.nextID)
	copied := *i
	f.items[i.ID] = &copied
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*Item, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (f *fakeItemRepo) Update(_ context.Context, i *Item) error {
	if _, ok := f.items[i.ID]; !ok {
		return ErrNotFound
	}
	copied := *i
	f.items[i.ID] = &copied
	return nil
}

func (f *fakeItemRepo) ListByOwner(_ context.Context, ownerID string, _ Filter) ([]*Item, int, error) {
	var out []*Item
	for _, i := range f.items {
		if i.OwnerID == ownerID {
			out = append(out, i)
		}
	}
	return out, len(out), nil
}

func (f *fakeItemRepo) Search(_ context.Context, text string, _ Filter) ([]*Item, int, error) {
	var out []*Item
	for _, i := range f.items {
		if i.Available {
			out = append(out, i)
		}
	}
	return out, len(out), nil
}

func (f *fakeItemRepo) CreateComment(_ context.Context, c *Comment) error {
	c.ID = "comment-" + strconv.Itoa(len(f.comments[c.ItemID])+1)
	f.comments[c.ItemID] = append(f.comments[c.ItemID], c)
	return nil
}

func (f *fakeItemRepo) ListComments(_ context.Context, itemID string) ([]*Comment, error) {
	return f.comments[itemID], nil
}

type fakeBookingReader struct {
	annotations map[string]booking.LastNext
	pastBookers map[string]bool // key: userID+"/"+itemID
}

func (f *fakeBookingReader) AnnotateItems(_ context.Context, itemIDs []string, _ time.Time) (map[string]booking.LastNext, error) {
	out := make(map[string]booking.LastNext)
	for _, id := range itemIDs {
		if ann, ok := f.annotations[id]; ok {
			out[id] = ann
		}
	}
	return out, nil
}

func (f *fakeBookingReader) HasPastBooking(_ context.Context, userID, itemID string, _ time.Time) (bool, error) {
	return f.pastBookers[userID+"/"+itemID], nil
}

func itemFixture() (*fakeItemRepo, *fakeBookingReader, Service) {
	repo := newFakeItemRepo()
	users := &fakeUserService{users: map[string]*user.User{
		"owner-1":  {ID: "owner-1", DisplayName: "Owner"},
		"viewer-1": {ID: "viewer-1", DisplayName: "Viewer"},
	}}
	bookings := &fakeBookingReader{
		annotations: make(map[string]booking.LastNext),
		pastBookers: make(map[string]bool),
	}
	return repo, bookings, NewService(repo, users, bookings)
}

func TestItemCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		_, _, svc := itemFixture()

		i, err := svc.Create(ctx, CreateRequest{
			OwnerID:     "owner-1",
			Name:        "  Drill  ",
			Description: "Cordless drill",
			Available:   true,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, i.ID)
		assert.Equal(t, "Drill", i.Name)
		assert.True(t, i.Available)
	})

	t.Run("blank name", func(t *testing.T) {
		_, _, svc := itemFixture()

		_, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "   "})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, _, svc := itemFixture()

		_, err := svc.Create(ctx, CreateRequest{OwnerID: "ghost", Name: "Drill"})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(svc Service) *Item {
		i, err := svc.Create(ctx, CreateRequest{
			OwnerID:     "owner-1",
			Name:        "Drill",
			Description: "Cordless drill",
			Available:   true,
		})
		if err != nil {
			panic(err)
		}
		return i
	}

	t.Run("owner applies partial update", func(t *testing.T) {
		_, _, svc := itemFixture()
		i := seed(svc)

		available := false
		info, err := svc.Update(ctx, i.ID, "owner-1", UpdateRequest{Available: &available})
		require.NoError(t, err)

		assert.False(t, info.Available)
		assert.Equal(t, "Drill", info.Name)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		_, _, svc := itemFixture()
		i := seed(svc)

		name := "Hammer"
		_, err := svc.Update(ctx, i.ID, "viewer-1", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotItemOwner)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, _, svc := itemFixture()
		i := seed(svc)

		name := "  "
		_, err := svc.Update(ctx, i.ID, "owner-1", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, _, svc := itemFixture()

		name := "Hammer"
		_, err := svc.Update(ctx, "missing", "owner-1", UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestItemGetInfo(t *testing.T) {
	ctx := context.Background()

	setup := func() (Service, *Item) {
		repo, bookings, svc := itemFixture()
		i, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "Drill", Available: true})
		if err != nil {
			panic(err)
		}
		bookings.annotations[i.ID] = booking.LastNext{
			Last: &booking.Booking{ID: "last-1", ItemID: i.ID},
			Next: &booking.Booking{ID: "next-1", ItemID: i.ID},
		}
		repo.comments[i.ID] = []*Comment{{ID: "c1", ItemID: i.ID, Text: "great"}}
		return svc, i
	}

	t.Run("owner sees booking annotations", func(t *testing.T) {
		svc, i := setup()

		info, err := svc.GetInfo(ctx, i.ID, "owner-1")
		require.NoError(t, err)

		require.NotNil(t, info.LastBooking)
		assert.Equal(t, "last-1", info.LastBooking.ID)
		require.NotNil(t, info.NextBooking)
		assert.Equal(t, "next-1", info.NextBooking.ID)
		assert.Len(t, info.Comments, 1)
	})

	t.Run("other viewers see comments but no schedule", func(t *testing.T) {
		svc, i := setup()

		info, err := svc.GetInfo(ctx, i.ID, "viewer-1")
		require.NoError(t, err)

		assert.Nil(t, info.LastBooking)
		assert.Nil(t, info.NextBooking)
		assert.Len(t, info.Comments, 1)
	})
}

func TestItemListByOwner(t *testing.T) {
	ctx := context.Background()

	_, bookings, svc := itemFixture()
	i1, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "Drill", Available: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "Saw", Available: true})
	require.NoError(t, err)

	bookings.annotations[i1.ID] = booking.LastNext{
		Next: &booking.Booking{ID: "next-1", ItemID: i1.ID},
	}

	infos, total, err := svc.ListByOwner(ctx, "owner-1", Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	var annotated int
	for _, info := range infos {
		if info.NextBooking != nil {
			annotated++
			assert.Equal(t, "next-1", info.NextBooking.ID)
		}
	}
	assert.Equal(t, 1, annotated)
}

func TestItemSearch(t *testing.T) {
	ctx := context.Background()

	_, _, svc := itemFixture()
	_, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "Drill", Available: true})
	require.NoError(t, err)

	t.Run("blank text yields empty result without querying", func(t *testing.T) {
		items, total, err := svc.Search(ctx, "   ", Filter{})
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, total)
	})

	t.Run("non-blank text queries the repository", func(t *testing.T) {
		items, total, err := svc.Search(ctx, "drill", Filter{})
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, total)
	})
}

func TestItemAddComment(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeBookingReader, Service, *Item) {
		_, bookings, svc := itemFixture()
		i, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Name: "Drill", Available: true})
		if err != nil {
			panic(err)
		}
		return bookings, svc, i
	}

	t.Run("past booker may comment", func(t *testing.T) {
		bookings, svc, i := setup()
		bookings.pastBookers["viewer-1/"+i.ID] = true

		c, err := svc.AddComment(ctx, i.ID, "viewer-1", "works great")
		require.NoError(t, err)

		assert.Equal(t, "works great", c.Text)
		assert.Equal(t, "Viewer", c.AuthorName)
	})

	t.Run("user who never booked is rejected", func(t *testing.T) {
		_, svc, i := setup()

		_, err := svc.AddComment(ctx, i.ID, "viewer-1", "works great")
		assert.ErrorIs(t, err, ErrDidNotBook)
	})

	t.Run("blank text rejected", func(t *testing.T) {
		bookings, svc, i := setup()
		bookings.pastBookers["viewer-1/"+i.ID] = true

		_, err := svc.AddComment(ctx, i.ID, "viewer-1", "   ")
		assert.ErrorIs(t, err, ErrEmptyComment)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, svc, i := setup()

		_, err := svc.AddComment(ctx, i.ID, "ghost", "hello")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		bookings, svc, _ := setup()
		bookings.pastBookers["viewer-1/missing"] = true

		_, err := svc.AddComment(ctx, "missing", "viewer-1", "hello")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
