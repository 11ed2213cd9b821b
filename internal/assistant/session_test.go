package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simmer-assistant/internal/common/errors"
	"simmer-assistant/internal/common/logger"
)

func newTestSessionStore(t *testing.T, proactiveDelay time.Duration) (*SessionStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client, time.Hour, proactiveDelay, logger.NewNoOpLogger()), mr
}

func TestSessionLifecycle(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, "ANIMA")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, StateCollapsed, sess.State)
	assert.Empty(t, sess.Transcript)

	err = store.Append(ctx, sess, "hola", Reply{Text: "¡Hola!", Actions: []string{ActionMenu}})
	require.NoError(t, err)
	assert.Equal(t, StateExpanded, sess.State)

	loaded, err := store.Get(ctx, "ANIMA", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, StateExpanded, loaded.State)
	require.Len(t, loaded.Transcript, 2)
	assert.Equal(t, "hola", loaded.Transcript[0].Text)
	assert.Equal(t, "¡Hola!", loaded.Transcript[1].Text)
}

func TestSessionGet_UnknownIDReturnsNotFound(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Minute)

	_, err := store.Get(context.Background(), "ANIMA", "no-such-session")
	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionNotFound, stdErr.Code)
}

func TestSessionGetOrCreate_MintsWhenMissing(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	sess, created, err := store.GetOrCreate(ctx, "ANIMA", "gone")
	require.NoError(t, err)
	assert.True(t, created)

	same, created, err := store.GetOrCreate(ctx, "ANIMA", sess.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, sess.ID, same.ID)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	store, mr := newTestSessionStore(t, time.Minute)
	ctx := context.Background()

	sess, err := store.Create(ctx, "SOPHIA")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, "SOPHIA", sess.ID)
	require.Error(t, err)
}

func TestProactiveNudgeFiresOncePerSession(t *testing.T) {
	store, _ := newTestSessionStore(t, 0)
	ctx := context.Background()
	profile := AnimaProfile(genLocations())

	sess, err := store.Create(ctx, "ANIMA")
	require.NoError(t, err)

	text, err := store.MaybeProactive(ctx, sess, profile, "es")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Equal(t, StateProactive, sess.State)

	again, err := store.MaybeProactive(ctx, sess, profile, "es")
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestProactiveNudgeWaitsForDelay(t *testing.T) {
	store, _ := newTestSessionStore(t, time.Hour)
	ctx := context.Background()
	profile := AnimaProfile(genLocations())

	sess, err := store.Create(ctx, "ANIMA")
	require.NoError(t, err)

	text, err := store.MaybeProactive(ctx, sess, profile, "es")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, StateCollapsed, sess.State)
}

func TestProactiveNudgeSkipsEngagedSession(t *testing.T) {
	store, _ := newTestSessionStore(t, 0)
	ctx := context.Background()
	profile := AnimaProfile(genLocations())

	sess, err := store.Create(ctx, "ANIMA")
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sess, "hola", Reply{Text: "¡Hola!"}))

	text, err := store.MaybeProactive(ctx, sess, profile, "es")
	require.NoError(t, err)
	assert.Empty(t, text)
}
