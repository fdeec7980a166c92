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

const LanguageStoreName = "UILanguage"

type languageState struct {
	Language entity.Language `json:"language"`
}

// LanguageStore persists the UI language selection under its own store
// name. Defaults to English.
type LanguageStore struct {
	mu        sync.RWMutex
	state     persistence.StateStore
	publisher ChangePublisher
	log       logger.ILogger

	current  languageState
	hydrated bool
}

func NewLanguageStore(state persistence.StateStore, publisher ChangePublisher, log logger.ILogger) *LanguageStore {
	return &LanguageStore{
		state:     state,
		publisher: publisher,
		log:       log,
		current:   languageState{Language: entity.LanguageEnglish},
	}
}

func (s *LanguageStore) Hydrate(ctx context.Context) error {
	blob, err := s.state.Load(ctx, LanguageStoreName)
	if err == nil && blob != nil {
		var loaded languageState
		if decodeErr := json.Unmarshal(blob, &loaded); decodeErr != nil {
			err = decodeErr
		} else {
			if loaded.Language != entity.LanguageEnglish && loaded.Language != entity.LanguageDhivehi {
				loaded.Language = entity.LanguageEnglish
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
		s.log.Error("store", "Failed to hydrate language store, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}

func (s *LanguageStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

func (s *LanguageStore) Language() entity.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Language
}

func (s *LanguageStore) SetLanguage(lang entity.Language) error {
	if lang != entity.LanguageEnglish && lang != entity.LanguageDhivehi {
		return serverutils.NewValidationError("unknown language: " + string(lang))
	}

	s.mu.Lock()
	s.current = languageState{Language: lang}
	s.mu.Unlock()

	if s.publisher != nil {
		s.publisher.StoreChanged(LanguageStoreName)
	}
	return nil
}

func (s *LanguageStore) MarshalState() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.current)
}
