package ticketstore_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerflowhq/careerflow-api/internal/adapter/ticketstore"
	"github.com/careerflowhq/careerflow-api/internal/domain"
)

func newTestStore(t *testing.T) (*ticketstore.Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return ticketstore.New(rdb), mr
}

func TestStore_PutTake(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	ticket := domain.UploadTicket{
		ID:       "ticket-1",
		FileID:   "file-1",
		SocialID: "social-1",
		FileName: "cv.pdf",
		FileType: "application/pdf",
		FileSize: 1024,
	}

	require.NoError(t, store.Put(ctx, ticket, time.Minute))

	got, err := store.Take(ctx, "ticket-1")
	require.NoError(t, err)
	assert.Equal(t, ticket, got)
}

func TestStore_TakeIsOneShot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.UploadTicket{ID: "ticket-1"}, time.Minute))
	_, err := store.Take(ctx, "ticket-1")
	require.NoError(t, err)

	_, err = store.Take(ctx, "ticket-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_TakeExpired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.UploadTicket{ID: "ticket-1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Take(ctx, "ticket-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_TakeUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Take(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
