package slot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafebonheur/pos/internal/storage/slot"
	"github.com/cafebonheur/pos/internal/store"
)

func TestFileSlotReadAbsent(t *testing.T) {
	s, err := slot.NewFileSlot(t.TempDir(), "pos-storage")
	require.NoError(t, err)

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileSlotWriteRead(t *testing.T) {
	s, err := slot.NewFileSlot(t.TempDir(), "pos-storage")
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), []byte(`{"products":[]}`)))

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[]}`, string(data))

	// A second write replaces the previous contents.
	require.NoError(t, s.Write(context.Background(), []byte(`{"products":[],"users":[]}`)))

	data, err = s.Read(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[],"users":[]}`, string(data))
}

func TestFileSlotLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s, err := slot.NewFileSlot(dir, "pos-storage")
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pos-storage.json", entries[0].Name())
}

func TestStateRoundTrip(t *testing.T) {
	s, err := slot.NewFileSlot(t.TempDir(), "pos-storage")
	require.NoError(t, err)

	state := store.SeedState()
	require.NoError(t, slot.WriteState(context.Background(), s, state))

	got, err := slot.ReadState(context.Background(), s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, state, *got)
}

func TestReadStateAbsent(t *testing.T) {
	s, err := slot.NewFileSlot(t.TempDir(), "pos-storage")
	require.NoError(t, err)

	got, err := slot.ReadState(context.Background(), s)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadStateCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := slot.NewFileSlot(dir, "pos-storage")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos-storage.json"), []byte("{not json"), 0o644))

	got, err := slot.ReadState(context.Background(), s)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestFileSlotIsHealthy(t *testing.T) {
	s, err := slot.NewFileSlot(t.TempDir(), "pos-storage")
	require.NoError(t, err)

	ok, err := s.IsHealthy(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
