package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/recipebox/internal/client/storage"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
)

// Preferences is both the snapshot handed to callers and the JSON document
// stored under common.PreferencesKey.
type Preferences struct {
	Favorites []int       `json:"favorites"`
	Ratings   map[int]int `json:"ratings"`
	DarkMode  bool        `json:"darkMode"`
}

// PreferenceStore owns favorites, ratings and the dark-mode flag. Every
// mutation writes the full record before returning; when the write fails the
// mutation is undone and the error returned.
//
// Favorites and ratings are independent: unfavoriting keeps the rating.
type PreferenceStore struct {
	store storage.KV
	log   logging.Logger

	mu        sync.RWMutex
	favorites map[int]struct{}
	ratings   map[int]int
	darkMode  bool

	initOnce sync.Once
	initErr  error
}

func NewPreferenceStore(store storage.KV, log logging.Logger) *PreferenceStore {
	return &PreferenceStore{
		store:     store,
		log:       log.With("component", "preferences"),
		favorites: make(map[int]struct{}),
		ratings:   make(map[int]int),
	}
}

// Initialize loads the persisted record once. Unparsable content is
// deleted and ignored; out-of-range ratings are dropped.
func (p *PreferenceStore) Initialize(ctx context.Context) error {
	p.initOnce.Do(func() {
		p.initErr = p.restore(ctx)
	})
	return p.initErr
}

func (p *PreferenceStore) restore(ctx context.Context) error {
	raw, err := p.store.Get(ctx, common.PreferencesKey)
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	if raw == nil {
		return nil
	}

	var rec Preferences
	if err := json.Unmarshal(raw, &rec); err != nil {
		p.log.Warn(ctx, "discarding persisted preferences",
			"error", fmt.Errorf("%w: %v", common.ErrMalformedState, err))
		if err := p.store.Delete(ctx, common.PreferencesKey); err != nil {
			return fmt.Errorf("clear preferences record: %w", err)
		}
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range rec.Favorites {
		p.favorites[id] = struct{}{}
	}
	for id, v := range rec.Ratings {
		if v == common.MinRating {
			continue
		}
		if !validRating(v) {
			p.log.Warn(ctx, "dropping out of range rating", "recipe", id, "rating", v)
			continue
		}
		p.ratings[id] = v
	}
	p.darkMode = rec.DarkMode

	p.log.Debug(ctx, "preferences restored",
		"favorites", len(p.favorites), "ratings", len(p.ratings), "dark_mode", p.darkMode)
	return nil
}

func validRating(v int) bool {
	return v >= common.MinRating && v <= common.MaxRating
}

func (p *PreferenceStore) IsFavorite(recipeID int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.favorites[recipeID]
	return ok
}

// ToggleFavorite adds or removes the recipe and returns the new membership.
func (p *PreferenceStore) ToggleFavorite(ctx context.Context, recipeID int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, was := p.favorites[recipeID]
	p.setFavoriteLocked(recipeID, !was)

	if err := p.persistLocked(ctx); err != nil {
		p.setFavoriteLocked(recipeID, was)
		return was, err
	}
	return !was, nil
}

func (p *PreferenceStore) setFavoriteLocked(recipeID int, on bool) {
	if on {
		p.favorites[recipeID] = struct{}{}
	} else {
		delete(p.favorites, recipeID)
	}
}

// Favorites returns the favorite recipe ids in ascending order.
func (p *PreferenceStore) Favorites() []int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.favoritesLocked()
}

func (p *PreferenceStore) favoritesLocked() []int {
	ids := make([]int, 0, len(p.favorites))
	for id := range p.favorites {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// GetRating returns 0 for unrated recipes.
func (p *PreferenceStore) GetRating(recipeID int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ratings[recipeID]
}

// SetRating stores value for the recipe; 0 clears it. Values outside
// [common.MinRating, common.MaxRating] fail with
// common.ErrInvalidPreferenceValue and change nothing.
func (p *PreferenceStore) SetRating(ctx context.Context, recipeID, value int) error {
	if !validRating(value) {
		return fmt.Errorf("%w: rating %d outside [%d,%d]",
			common.ErrInvalidPreferenceValue, value, common.MinRating, common.MaxRating)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prev, had := p.ratings[recipeID]
	p.setRatingLocked(recipeID, value)

	if err := p.persistLocked(ctx); err != nil {
		if had {
			p.ratings[recipeID] = prev
		} else {
			delete(p.ratings, recipeID)
		}
		return err
	}
	return nil
}

func (p *PreferenceStore) setRatingLocked(recipeID, value int) {
	if value == common.MinRating {
		delete(p.ratings, recipeID)
		return
	}
	p.ratings[recipeID] = value
}

func (p *PreferenceStore) DarkMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.darkMode
}

// ToggleDarkMode flips the flag and returns the new value.
func (p *PreferenceStore) ToggleDarkMode(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.darkMode = !p.darkMode
	if err := p.persistLocked(ctx); err != nil {
		p.darkMode = !p.darkMode
		return p.darkMode, err
	}
	return p.darkMode, nil
}

// Snapshot returns a copy of the current preferences.
func (p *PreferenceStore) Snapshot() Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

func (p *PreferenceStore) snapshotLocked() Preferences {
	ratings := make(map[int]int, len(p.ratings))
	for id, v := range p.ratings {
		ratings[id] = v
	}
	return Preferences{
		Favorites: p.favoritesLocked(),
		Ratings:   ratings,
		DarkMode:  p.darkMode,
	}
}

func (p *PreferenceStore) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(p.snapshotLocked())
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := p.store.Put(ctx, map[string][]byte{common.PreferencesKey: raw}); err != nil {
		p.log.Error(ctx, "failed to persist preferences", "error", err)
		return fmt.Errorf("persist preferences: %w", err)
	}
	return nil
}
