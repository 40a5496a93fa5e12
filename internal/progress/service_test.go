package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/kidquest/internal/kv"
)

type failingStore struct {
	kv.Store
	getErr error
	setErr error
}

func (f failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func TestService_CompleteFlow(t *testing.T) {
	ctx := t.Context()
	c := gridCurriculum(t, 2, 1)
	store := kv.NewMemory()
	svc := NewService(store, c, zap.NewNop())

	assert.Equal(t, "mathProgress_year2", svc.Key())
	assert.True(t, svc.Board(ctx).FirstTime)

	for i, ch := range []string{"challenge-1", "challenge-2", "challenge-3"} {
		res, err := svc.Complete(ctx, "cat-1", "topic-1", ch)
		require.NoError(t, err, "step %d", i)
		assert.False(t, res.AlreadyCompleted)
		assert.False(t, res.TopicCompleted)
	}

	res, err := svc.Complete(ctx, "cat-1", "topic-1", "challenge-4")
	require.NoError(t, err)
	assert.True(t, res.TopicCompleted)
	assert.True(t, res.CategoryCompleted)

	// Record re-reads storage every call.
	raw, ok, _ := store.Get(ctx, "mathProgress_year2")
	require.True(t, ok)
	assert.Equal(t, Decode([]byte(raw)), svc.Record(ctx))

	locked, err := svc.Locked(ctx, "cat-2", "topic-1", "challenge-1")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestService_CompleteReplayIsNoop(t *testing.T) {
	ctx := t.Context()
	svc := NewService(kv.NewMemory(), gridCurriculum(t, 1, 1), nil)

	_, err := svc.Complete(ctx, "cat-1", "topic-1", "challenge-1")
	require.NoError(t, err)
	before := svc.Record(ctx)

	res, err := svc.Complete(ctx, "cat-1", "topic-1", "challenge-1")
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)
	assert.Equal(t, before, svc.Record(ctx))
}

func TestService_CompleteRejectsLockedAndUnknown(t *testing.T) {
	ctx := t.Context()
	svc := NewService(kv.NewMemory(), gridCurriculum(t, 2, 2), nil)

	_, err := svc.Complete(ctx, "cat-1", "topic-1", "challenge-3")
	assert.True(t, errors.Is(err, ErrChallengeLocked), "got %v", err)

	_, err = svc.Complete(ctx, "cat-2", "topic-1", "challenge-1")
	assert.True(t, errors.Is(err, ErrChallengeLocked), "got %v", err)

	_, err = svc.Complete(ctx, "cat-9", "topic-1", "challenge-1")
	assert.True(t, errors.Is(err, ErrUnknownNode), "got %v", err)

	_, err = svc.Locked(ctx, "cat-1", "topic-1", "challenge-9")
	assert.True(t, errors.Is(err, ErrUnknownNode), "got %v", err)

	assert.True(t, svc.Board(ctx).FirstTime, "rejected completions must not write")
}

func TestService_MalformedRecordDegradesAndWarns(t *testing.T) {
	ctx := t.Context()
	core, logs := observer.New(zapcore.WarnLevel)
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, "mathProgress_year2", `{"broken":`))

	svc := NewService(store, gridCurriculum(t, 1, 1), zap.New(core))
	assert.Empty(t, svc.Record(ctx))
	assert.Equal(t, 1, logs.FilterMessage("discarding malformed progress record").Len())

	// A fresh completion overwrites the corrupt document.
	_, err := svc.Complete(ctx, "cat-1", "topic-1", "challenge-1")
	require.NoError(t, err)
	assert.True(t, svc.Record(ctx).HasCompleted("cat-1", "topic-1", "challenge-1"))
}

func TestService_StorageErrors(t *testing.T) {
	ctx := t.Context()
	c := gridCurriculum(t, 1, 1)

	readFail := NewService(failingStore{Store: kv.NewMemory(), getErr: errors.New("disk gone")}, c, nil)
	assert.Empty(t, readFail.Record(ctx))

	boom := errors.New("read-only")
	writeFail := NewService(failingStore{Store: kv.NewMemory(), setErr: boom}, c, nil)
	_, err := writeFail.Complete(ctx, "cat-1", "topic-1", "challenge-1")
	assert.ErrorIs(t, err, boom)
}

func TestService_Reset(t *testing.T) {
	ctx := t.Context()
	svc := NewService(kv.NewMemory(), gridCurriculum(t, 1, 1), nil)

	_, err := svc.Complete(ctx, "cat-1", "topic-1", "challenge-1")
	require.NoError(t, err)
	require.False(t, svc.Board(ctx).FirstTime)

	require.NoError(t, svc.Reset(ctx))
	assert.True(t, svc.Board(ctx).FirstTime)
}
