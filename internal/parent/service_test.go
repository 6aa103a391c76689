package parent

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "classtrack/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateParent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a parent", func(t *testing.T) {
		store := NewInMemory()
		svc := NewService(store, testLogger())

		p, err := svc.Create(ctx, "Dana Osei", "+15550001111", "dana@example.com")
		require.NoError(t, err)
		assert.Len(t, string(p.ID), 10)

		stored, err := store.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dana Osei", stored.Name)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		svc := NewService(NewInMemory(), testLogger())
		_, err := svc.Create(ctx, "Dana Osei", "+15550001111", "dana@example.com")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "Ron Weiss", "+15550001111", "ron@example.com")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.Contains(t, err.Error(), "Phone/Email already exists.")
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc := NewService(NewInMemory(), testLogger())
		_, err := svc.Create(ctx, "Dana Osei", "+15550001111", "dana@example.com")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "Ron Weiss", "+15550002222", "dana@example.com")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func TestParentLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	svc := NewService(store, testLogger())

	p, err := svc.Create(ctx, "Dana Osei", "+15550001111", "dana@example.com")
	require.NoError(t, err)

	parents, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, parents, 1)

	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err = svc.Get(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	err = svc.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
