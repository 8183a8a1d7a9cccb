package marathon

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) *Tracker {
	t.Helper()
	tracker, err := New(filepath.Join(t.TempDir(), "marathon.db"))
	require.NoError(t, err)
	return tracker
}

func TestStartAndGet(t *testing.T) {
	tracker := newTracker(t)

	require.NoError(t, tracker.Start(42, decimal.NewFromInt(1000)))

	entry, err := tracker.Get(42)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.StartDeposit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, entry.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestGetNotEnrolled(t *testing.T) {
	tracker := newTracker(t)

	entry, err := tracker.Get(7)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestApplyPnL(t *testing.T) {
	tracker := newTracker(t)

	require.NoError(t, tracker.Start(42, decimal.NewFromInt(500)))

	entry, err := tracker.ApplyPnL(42, decimal.RequireFromString("-120.50"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Balance.Equal(decimal.RequireFromString("379.5")))
	assert.True(t, entry.StartDeposit.Equal(decimal.NewFromInt(500)))

	// Not enrolled: no-op.
	entry, err = tracker.ApplyPnL(99, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRestartResetsBalance(t *testing.T) {
	tracker := newTracker(t)

	require.NoError(t, tracker.Start(42, decimal.NewFromInt(500)))
	_, err := tracker.ApplyPnL(42, decimal.NewFromInt(250))
	require.NoError(t, err)

	require.NoError(t, tracker.Start(42, decimal.NewFromInt(2000)))
	entry, err := tracker.Get(42)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Balance.Equal(decimal.NewFromInt(2000)))
}

func TestStop(t *testing.T) {
	tracker := newTracker(t)

	require.NoError(t, tracker.Start(42, decimal.NewFromInt(500)))
	require.NoError(t, tracker.Stop(42))

	entry, err := tracker.Get(42)
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Stopping a user who never joined is not an error.
	assert.NoError(t, tracker.Stop(123))
}
