package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovation-hub/internal/model"
	"innovation-hub/internal/store"
	"innovation-hub/internal/store/memory"
)

// slowStore 模拟一个在截止时间前不会返回的后端
type slowStore struct {
	*memory.Store
}

func (s slowStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s slowStore) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (*model.Project, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBoundedTimesOutReads(t *testing.T) {
	mem, err := memory.NewSeeded()
	require.NoError(t, err)
	s := store.Bounded(slowStore{mem}, 20*time.Millisecond)

	start := time.Now()
	_, err = s.GetEvent(context.Background(), "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	var we *store.WriteError
	assert.False(t, errors.As(err, &we))
}

func TestBoundedWrapsWriteTimeout(t *testing.T) {
	mem, err := memory.NewSeeded()
	require.NoError(t, err)
	s := store.Bounded(slowStore{mem}, 20*time.Millisecond)

	_, err = s.UpdateProject(context.Background(), "2", model.ProjectPatch{CodeLink: model.Str("https://x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var we *store.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "update_project", we.Op)
	assert.Equal(t, "2", we.ID)

	p, err := mem.GetProject(context.Background(), "2")
	require.NoError(t, err)
	assert.Nil(t, p.CodeLink)
}

func TestBoundedPassesThrough(t *testing.T) {
	mem, err := memory.NewSeeded()
	require.NoError(t, err)
	s := store.Bounded(mem, time.Second)
	ctx := context.Background()

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = s.GetEvent(ctx, "404")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteEvent(ctx, "2"))
	err = s.DeleteEvent(ctx, "2")
	assert.ErrorIs(t, err, store.ErrNotFound)
	var we *store.WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "delete_event", we.Op)
}

func TestBoundedWithoutTimeout(t *testing.T) {
	mem, err := memory.NewSeeded()
	require.NoError(t, err)
	s := store.Bounded(mem, 0)

	p, err := s.UpdateProject(context.Background(), "2", model.ProjectPatch{DemoLink: model.Str("https://demo")})
	require.NoError(t, err)
	assert.Equal(t, "https://demo", *p.DemoLink)
}

func TestWriteErrorMessage(t *testing.T) {
	err := store.Fail("add_team", "t1", store.ErrConflict)
	assert.Equal(t, "store: add_team t1: store: record already exists", err.Error())
	assert.Same(t, err, store.Fail("outer", "x", err))
	assert.NoError(t, store.Fail("noop", "", nil))
}
