package state

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/infodash/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func TestStore_ReadFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Ping(ctx))

	read, err := s.IsRead(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, read, "unknown link is unread")

	require.NoError(t, s.MarkRead(ctx, "https://example.com/a"))
	require.NoError(t, s.MarkRead(ctx, "https://example.com/a"), "idempotent")
	require.NoError(t, s.MarkRead(ctx, "https://example.com/b"))

	read, err = s.IsRead(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, read)

	links, err := s.ReadLinks(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"https://example.com/a", "https://example.com/b"}, links)

	require.NoError(t, s.MarkUnread(ctx, "https://example.com/a"))
	require.NoError(t, s.MarkUnread(ctx, "https://example.com/never-seen"))
	read, err = s.IsRead(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.False(t, read)

	links, err = s.ReadLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/b"}, links)
}

func TestStore_SavedFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	links, err := s.SavedLinks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, links)
	assert.Empty(t, links)

	require.NoError(t, s.Save(ctx, "https://example.com/a"))
	require.NoError(t, s.MarkRead(ctx, "https://example.com/a"))

	saved, err := s.IsSaved(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, saved)

	st, err := s.State(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleState{Read: true, Saved: true}, st, "flags are independent")

	require.NoError(t, s.Unsave(ctx, "https://example.com/a"))
	st, err = s.State(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, domain.ArticleState{Read: true}, st)

	links, err = s.SavedLinks(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestStore_States(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkRead(ctx, "l1"))
	require.NoError(t, s.Save(ctx, "l2"))
	require.NoError(t, s.MarkRead(ctx, "l3"))
	require.NoError(t, s.MarkUnread(ctx, "l3"))

	res, err := s.States(ctx, []string{"l1", "l2", "l3", "l4"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.ArticleState{
		"l1": {Read: true},
		"l2": {Saved: true},
	}, res)

	res, err = s.States(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestStore_EmptyLink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.MarkRead(ctx, "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark read: empty link")
	require.Error(t, s.Save(ctx, ""))
}

func TestStore_Persistent(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "state.db") + "?mode=rwc"
	ctx := context.Background()

	s, err := New(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "https://example.com/keep"))
	require.NoError(t, s.Close())

	s, err = New(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	defer s.Close()
	saved, err := s.IsSaved(ctx, "https://example.com/keep")
	require.NoError(t, err)
	assert.True(t, saved, "flags survive reopen")
}

func TestStore_ConcurrentWrites(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "state.db") + "?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	ctx := context.Background()
	s, err := New(ctx, Config{DSN: dsn, MaxOpenConns: 4})
	require.NoError(t, err)
	defer s.Close()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.MarkRead(ctx, fmt.Sprintf("https://example.com/%d", i)))
		}()
	}
	wg.Wait()

	links, err := s.ReadLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 20)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isLockError(errors.New("database table is locked")))
	assert.False(t, isLockError(errors.New("no such table")))

	ce := &criticalError{err: fmt.Errorf("save: %w", errors.New("boom"))}
	assert.Equal(t, "save: boom", ce.Error())
	assert.Equal(t, "boom", errors.Unwrap(errors.Unwrap(ce)).Error())
}
