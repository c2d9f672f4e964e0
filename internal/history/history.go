// Package history keeps saved calculations and group presets per device on
// top of a storage.Store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mmynk/calckit/internal/models"
	"github.com/mmynk/calckit/internal/storage"
)

// DefaultLimit is the number of entries kept per device when none is configured.
const DefaultLimit = 50

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidEntry = errors.New("invalid entry")
)

// Repository stores history entries under per-device keys:
//
//	history:<device>:index        JSON array of entry IDs, newest first
//	history:<device>:entry:<id>   JSON entry
//	groups:<device>               JSON array of presets
type Repository struct {
	store storage.Store
	limit int
	now   func() time.Time

	// mu serializes read-modify-write of index and preset documents.
	mu sync.Mutex
}

// New creates a Repository keeping at most limit entries per device.
func New(store storage.Store, limit int) *Repository {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Repository{
		store: store,
		limit: limit,
		now:   time.Now,
	}
}

func indexKey(deviceID string) string     { return "history:" + deviceID + ":index" }
func entryKey(deviceID, id string) string { return "history:" + deviceID + ":entry:" + id }
func groupsKey(deviceID string) string    { return "groups:" + deviceID }

// Save stores a new entry and evicts the oldest ones beyond the limit.
// The entry's ID, CreatedAt and (if blank) Title are filled in.
func (r *Repository) Save(ctx context.Context, deviceID string, entry *models.Entry) error {
	if deviceID == "" {
		return fmt.Errorf("%w: device ID required", ErrInvalidEntry)
	}
	if !entry.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, entry.Kind)
	}
	if len(entry.Input) == 0 || !json.Valid(entry.Input) {
		return fmt.Errorf("%w: input must be JSON", ErrInvalidEntry)
	}
	if len(entry.Output) > 0 && !json.Valid(entry.Output) {
		return fmt.Errorf("%w: output must be JSON", ErrInvalidEntry)
	}

	now := r.now()
	entry.ID = ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
	entry.CreatedAt = now.Unix()
	if strings.TrimSpace(entry.Title) == "" {
		entry.Title = generateTitle(entry.Kind, now)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.putJSON(ctx, entryKey(deviceID, entry.ID), entry); err != nil {
		return err
	}

	ids, err := r.index(ctx, deviceID)
	if err != nil {
		return err
	}
	ids = append([]string{entry.ID}, ids...)

	if len(ids) > r.limit {
		for _, old := range ids[r.limit:] {
			if err := r.store.Delete(ctx, entryKey(deviceID, old)); err != nil {
				return fmt.Errorf("failed to evict entry %s: %w", old, err)
			}
		}
		ids = ids[:r.limit]
	}

	return r.putJSON(ctx, indexKey(deviceID), ids)
}

// List returns the device's entries, newest first.
func (r *Repository) List(ctx context.Context, deviceID string) ([]models.Entry, error) {
	r.mu.Lock()
	ids, err := r.index(ctx, deviceID)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		var entry models.Entry
		found, err := r.getJSON(ctx, entryKey(deviceID, id), &entry)
		if err != nil {
			return nil, err
		}
		if !found {
			// Index and entry are written separately; skip a dangling ID
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Get returns a single entry.
func (r *Repository) Get(ctx context.Context, deviceID, id string) (*models.Entry, error) {
	var entry models.Entry
	found, err := r.getJSON(ctx, entryKey(deviceID, id), &entry)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: entry %s", ErrNotFound, id)
	}
	return &entry, nil
}

// Delete removes an entry from the device's history.
func (r *Repository) Delete(ctx context.Context, deviceID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.index(ctx, deviceID)
	if err != nil {
		return err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return fmt.Errorf("%w: entry %s", ErrNotFound, id)
	}

	if err := r.store.Delete(ctx, entryKey(deviceID, id)); err != nil {
		return err
	}
	return r.putJSON(ctx, indexKey(deviceID), slices.Delete(ids, i, i+1))
}

// SaveGroup stores a preset, replacing any preset with the same name.
func (r *Repository) SaveGroup(ctx context.Context, deviceID string, preset *models.GroupPreset) error {
	preset.Name = strings.TrimSpace(preset.Name)
	if deviceID == "" || preset.Name == "" {
		return fmt.Errorf("%w: device ID and group name required", ErrInvalidEntry)
	}
	if len(preset.Members) == 0 {
		return fmt.Errorf("%w: group needs members", ErrInvalidEntry)
	}
	preset.UpdatedAt = r.now().Unix()

	r.mu.Lock()
	defer r.mu.Unlock()

	groups, err := r.groups(ctx, deviceID)
	if err != nil {
		return err
	}
	if i := slices.IndexFunc(groups, func(g models.GroupPreset) bool { return g.Name == preset.Name }); i >= 0 {
		groups[i] = *preset
	} else {
		groups = append(groups, *preset)
	}
	return r.putJSON(ctx, groupsKey(deviceID), groups)
}

// ListGroups returns the device's presets in the order they were first saved.
func (r *Repository) ListGroups(ctx context.Context, deviceID string) ([]models.GroupPreset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groups(ctx, deviceID)
}

// DeleteGroup removes a preset by name.
func (r *Repository) DeleteGroup(ctx context.Context, deviceID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	groups, err := r.groups(ctx, deviceID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(groups, func(g models.GroupPreset) bool { return g.Name == name })
	if i < 0 {
		return fmt.Errorf("%w: group %s", ErrNotFound, name)
	}
	return r.putJSON(ctx, groupsKey(deviceID), slices.Delete(groups, i, i+1))
}

func (r *Repository) index(ctx context.Context, deviceID string) ([]string, error) {
	var ids []string
	if _, err := r.getJSON(ctx, indexKey(deviceID), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) groups(ctx context.Context, deviceID string) ([]models.GroupPreset, error) {
	groups := []models.GroupPreset{}
	if _, err := r.getJSON(ctx, groupsKey(deviceID), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *Repository) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) putJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, string(raw))
}

var kindLabels = map[models.Kind]string{
	models.KindDutchPay:  "Dutch pay",
	models.KindInterest:  "Interest",
	models.KindSeverance: "Severance pay",
	models.KindOvulation: "Cycle",
}

// generateTitle creates an auto-generated title from the kind and date.
func generateTitle(kind models.Kind, at time.Time) string {
	return fmt.Sprintf("%s - %s", kindLabels[kind], at.Format("Jan 2, 2006"))
}
