package db

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gugon/internal/combatlog"
	"github.com/udisondev/gugon/internal/game/combat"
	"github.com/udisondev/gugon/internal/testutil"
)

func exerciseArchive(t *testing.T, a Archive) {
	t.Helper()
	ctx := context.Background()

	events := []combatlog.Event{
		{
			Encounter: "run-1", Round: 1, Actor: "Paladin", Target: "Skeleton 1",
			Report: []combat.AttackReport{{IsHit: true, Roll: 17, AttackBonus: 5}},
		},
		{
			Encounter: "run-1", Round: 1, Actor: "Skeleton 1", Target: "Paladin",
			Report: combat.EscapeReport{Actor: "Skeleton 1"},
		},
		{
			Encounter: "run-2", Round: 3, Actor: "Paladin", Target: "Paladin",
			Report: combat.EscapeReport{Actor: "Paladin"},
		},
	}
	for _, ev := range events {
		require.NoError(t, a.Record(ctx, ev))
	}

	err := a.Record(ctx, combatlog.Event{Encounter: "run-1", Report: 42})
	assert.ErrorIs(t, err, combatlog.ErrUnknownReport)

	stored, err := a.Events(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "attacks", stored[0].Kind)
	assert.Equal(t, "Skeleton 1", stored[0].Target)
	assert.Equal(t, 1, stored[0].Round)

	var attacks []combat.AttackReport
	require.NoError(t, json.Unmarshal(stored[0].Report, &attacks))
	require.Len(t, attacks, 1)
	assert.Equal(t, 17, attacks[0].Roll)
	assert.Equal(t, "escape", stored[1].Kind)

	require.NoError(t, a.SaveResult(ctx, Result{Encounter: "run-1", Seed: 1, Outcome: "victory", Rounds: 4, Player: "Paladin"}))
	require.NoError(t, a.SaveResult(ctx, Result{Encounter: "run-2", Seed: 2, Outcome: "escaped", Rounds: 3, Player: "Paladin"}))
	require.NoError(t, a.SaveResult(ctx, Result{Encounter: "run-1", Seed: 1, Outcome: "defeat", Rounds: 5, Player: "Paladin"}))

	outcomes, err := a.Outcomes(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"defeat": 1, "escaped": 1}, outcomes)
}

func TestSQLiteArchive(t *testing.T) {
	a, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	exerciseArchive(t, a)
}

func TestSQLiteArchive_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	a, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, a.SaveResult(ctx, Result{Encounter: "x", Outcome: "victory"}))
	require.NoError(t, a.Close())

	a, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer a.Close()
	outcomes, err := a.Outcomes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, outcomes["victory"])
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), " ")
	assert.Error(t, err)
}

func TestPostgresArchive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres archive in short mode")
	}
	pool := testutil.SetupTestDB(t)
	exerciseArchive(t, NewPostgresArchive(pool))
}
