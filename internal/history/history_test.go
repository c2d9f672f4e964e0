package history

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/calckit/internal/models"
	"github.com/mmynk/calckit/internal/storage/memory"
)

func newTestRepository(t *testing.T, limit int) (*Repository, *memory.Store) {
	t.Helper()
	store := memory.New()
	repo := New(store, limit)
	repo.now = func() time.Time { return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return repo, store
}

func newEntry(kind models.Kind) *models.Entry {
	return &models.Entry{
		Kind:   kind,
		Input:  json.RawMessage(`{"total":30000}`),
		Output: json.RawMessage(`{"transfers":[]}`),
	}
}

func TestSaveFillsDefaults(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()

	entry := newEntry(models.KindDutchPay)
	require.NoError(t, repo.Save(ctx, "device-1", entry))

	assert.Len(t, entry.ID, 26)
	assert.Equal(t, "Dutch pay - Mar 1, 2025", entry.Title)
	assert.Equal(t, int64(1740830400), entry.CreatedAt)

	got, err := repo.Get(ctx, "device-1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)
	assert.JSONEq(t, `{"total":30000}`, string(got.Input))
}

func TestListNewestFirstAndScopedByDevice(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()

	first := newEntry(models.KindInterest)
	first.Title = "first"
	second := newEntry(models.KindSeverance)
	second.Title = "second"
	require.NoError(t, repo.Save(ctx, "device-1", first))
	require.NoError(t, repo.Save(ctx, "device-1", second))
	require.NoError(t, repo.Save(ctx, "device-2", newEntry(models.KindOvulation)))

	entries, err := repo.List(ctx, "device-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Title)
	assert.Equal(t, "first", entries[1].Title)

	_, err = repo.Get(ctx, "device-2", first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	empty, err := repo.List(ctx, "device-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSaveEvictsBeyondLimit(t *testing.T) {
	repo, store := newTestRepository(t, 3)
	ctx := context.Background()

	var saved []*models.Entry
	for i := 0; i < 5; i++ {
		e := newEntry(models.KindDutchPay)
		e.Title = fmt.Sprintf("bill %d", i)
		require.NoError(t, repo.Save(ctx, "dev", e))
		saved = append(saved, e)
	}

	entries, err := repo.List(ctx, "dev")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "bill 4", entries[0].Title)
	assert.Equal(t, "bill 2", entries[2].Title)

	_, ok, err := store.Get(ctx, entryKey("dev", saved[0].ID))
	require.NoError(t, err)
	assert.False(t, ok, "oldest entry should be evicted from the store")
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()

	entry := newEntry(models.KindDutchPay)
	require.NoError(t, repo.Save(ctx, "dev", entry))
	require.NoError(t, repo.Delete(ctx, "dev", entry.ID))

	entries, err := repo.List(ctx, "dev")
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, repo.Delete(ctx, "dev", entry.ID), ErrNotFound)
}

func TestSaveValidation(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Save(ctx, "", newEntry(models.KindDutchPay)), ErrInvalidEntry)
	assert.ErrorIs(t, repo.Save(ctx, "dev", newEntry("pdf")), ErrInvalidEntry)

	bad := newEntry(models.KindDutchPay)
	bad.Input = json.RawMessage(`{not json`)
	assert.ErrorIs(t, repo.Save(ctx, "dev", bad), ErrInvalidEntry)

	noInput := newEntry(models.KindDutchPay)
	noInput.Input = nil
	assert.ErrorIs(t, repo.Save(ctx, "dev", noInput), ErrInvalidEntry)
}

func TestGroupPresets(t *testing.T) {
	repo, _ := newTestRepository(t, 0)
	ctx := context.Background()

	require.NoError(t, repo.SaveGroup(ctx, "dev", &models.GroupPreset{
		Name: "Roommates", Members: []string{"Alice", "Bob"},
	}))
	require.NoError(t, repo.SaveGroup(ctx, "dev", &models.GroupPreset{
		Name: " Work Lunch ", Members: []string{"Carol", "Dan", "Eve"},
	}))
	// Same name replaces in place
	require.NoError(t, repo.SaveGroup(ctx, "dev", &models.GroupPreset{
		Name: "Roommates", Members: []string{"Alice", "Bob", "Charlie"},
	}))

	groups, err := repo.ListGroups(ctx, "dev")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Roommates", groups[0].Name)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, groups[0].Members)
	assert.Equal(t, "Work Lunch", groups[1].Name)
	assert.Equal(t, int64(1740830400), groups[1].UpdatedAt)

	require.NoError(t, repo.DeleteGroup(ctx, "dev", "Roommates"))
	assert.ErrorIs(t, repo.DeleteGroup(ctx, "dev", "Roommates"), ErrNotFound)

	groups, err = repo.ListGroups(ctx, "dev")
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	assert.ErrorIs(t, repo.SaveGroup(ctx, "dev", &models.GroupPreset{Name: "  "}), ErrInvalidEntry)
	assert.ErrorIs(t, repo.SaveGroup(ctx, "dev", &models.GroupPreset{Name: "Empty"}), ErrInvalidEntry)
}

func TestListGroupsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t, 0)

	groups, err := repo.ListGroups(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
