package store

import (
	"context"
	"encoding/json"
	"sync"

	"notepocket/internal/entity"
	"notepocket/internal/persistence"
	"notepocket/internal/pkg/logger"
	"notepocket/internal/pkg/serverutils"
)

const ThemeStoreName = "UITheme"

var appearanceToThemeId = map[entity.Appearance]entity.ThemeId{
	entity.AppearanceSystem: entity.ThemeLight,
	entity.AppearanceLight:  entity.ThemeLight,
	entity.AppearanceDark:   entity.ThemeDark,
	entity.AppearanceBlue:   entity.ThemeBlue,
	entity.AppearanceGreen:  entity.ThemeGreen,
	entity.AppearancePurple: entity.ThemePurple,
	entity.AppearanceOrange: entity.ThemeOrange,
	entity.AppearancePink:   entity.ThemePink,
}

var themeIdToAppearance = map[entity.ThemeId]entity.Appearance{
	entity.ThemeLight:  entity.AppearanceLight,
	entity.ThemeDark:   entity.AppearanceDark,
	entity.ThemeBlue:   entity.AppearanceBlue,
	entity.ThemeGreen:  entity.AppearanceGreen,
	entity.ThemePurple: entity.AppearancePurple,
	entity.ThemeOrange: entity.AppearanceOrange,
	entity.ThemePink:   entity.AppearancePink,
}

type themeState struct {
	IsSystemAppearance bool           `json:"isSystemAppearance"`
	ThemeId            entity.ThemeId `json:"themeId"`
}

// ThemeStore persists the UI theme selection under its own store name,
// separately from the notes blob.
type ThemeStore struct {
	mu        sync.RWMutex
	state     persistence.StateStore
	publisher ChangePublisher
	log       logger.ILogger

	current  themeState
	hydrated bool
}

func NewThemeStore(state persistence.StateStore, publisher ChangePublisher, log logger.ILogger) *ThemeStore {
	return &ThemeStore{
		state:     state,
		publisher: publisher,
		log:       log,
		current:   themeState{ThemeId: entity.ThemeLight},
	}
}

func (s *ThemeStore) Hydrate(ctx context.Context) error {
	blob, err := s.state.Load(ctx, ThemeStoreName)
	if err == nil && blob != nil {
		var loaded themeState
		if decodeErr := json.Unmarshal(blob, &loaded); decodeErr != nil {
			err = decodeErr
		} else {
			if _, known := themeIdToAppearance[loaded.ThemeId]; !known {
				loaded.ThemeId = entity.ThemeLight
			}
			s.mu.Lock()
			s.current = loaded
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	s.hydrated = true
	s.mu.Unlock()

	if err != nil {
		s.log.Error("store", "Failed to hydrate theme store, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}

func (s *ThemeStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Appearance returns the user-facing selection, "System" when the store
// follows the device color scheme.
func (s *ThemeStore) Appearance() entity.Appearance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current.IsSystemAppearance {
		return entity.AppearanceSystem
	}
	return themeIdToAppearance[s.current.ThemeId]
}

func (s *ThemeStore) ThemeId() entity.ThemeId {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ThemeId
}

func (s *ThemeStore) SetAppearance(appearance entity.Appearance) error {
	themeId, known := appearanceToThemeId[appearance]
	if !known {
		return serverutils.NewValidationError("unknown appearance: " + string(appearance))
	}

	s.mu.Lock()
	s.current = themeState{
		IsSystemAppearance: appearance == entity.AppearanceSystem,
		ThemeId:            themeId,
	}
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.StoreChanged(ThemeStoreName)
	}
	return nil
}

// EffectiveMode resolves the selection to a concrete light/dark mode,
// deferring to the device scheme when following the system.
func (s *ThemeStore) EffectiveMode(systemMode string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current.IsSystemAppearance {
		if systemMode == "dark" {
			return "dark"
		}
		return "light"
	}
	if s.current.ThemeId == entity.ThemeDark {
		return "dark"
	}
	return "light"
}

func (s *ThemeStore) MarshalState() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.current)
}
