package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notepocket/internal/entity"
	"notepocket/internal/persistence"
	"notepocket/internal/pkg/logger"
)

// NotesStoreName keys the notes blob in the persistence adapter, distinct
// from the settings stores ("UITheme", "UILanguage").
const NotesStoreName = "NotesStore"

// ChangePublisher receives a fire-and-forget trigger after every
// structural mutation. Persistence write-through hangs off this hook; the
// caller never waits on it and never sees its failures.
type ChangePublisher interface {
	StoreChanged(name string)
}

// Change is the immutable snapshot handed to subscribers on every
// mutation. Observers detect missed updates by comparing versions.
type Change struct {
	Version uint64
	Notes   []entity.Note
}

type notesState struct {
	Notes []entity.Note `json:"notes"`
}

// NotesStore owns the authoritative in-memory note collection: ordered by
// UpdatedAt descending, indexed by id, persisted as a single JSON blob.
// Every mutation installs a brand-new slice and a brand-new entity value
// so observers can rely on snapshot comparison.
type NotesStore struct {
	mu        sync.RWMutex
	state     persistence.StateStore
	publisher ChangePublisher
	log       logger.ILogger
	now       func() time.Time

	notes    []entity.Note
	index    map[string]int
	hydrated bool
	version  uint64

	subs    map[int]chan Change
	nextSub int
}

func NewNotesStore(state persistence.StateStore, publisher ChangePublisher, log logger.ILogger) *NotesStore {
	return &NotesStore{
		state:     state,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		notes:     []entity.Note{},
		index:     map[string]int{},
		subs:      map[int]chan Change{},
	}
}

// Hydrate loads the persisted collection exactly once at startup and
// releases the readiness gate. A load or decode failure is logged and the
// gate is still released with empty data so the app stays usable.
func (s *NotesStore) Hydrate(ctx context.Context) error {
	blob, err := s.state.Load(ctx, NotesStoreName)
	if err != nil {
		s.log.Error("store", "Failed to load persisted notes, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		s.mu.Lock()
		s.hydrated = true
		s.mu.Unlock()
		return err
	}

	var loaded notesState
	if blob != nil {
		if err := json.Unmarshal(blob, &loaded); err != nil {
			s.log.Error("store", "Failed to decode persisted notes, starting empty", map[string]interface{}{
				"error": err.Error(),
			})
			s.mu.Lock()
			s.hydrated = true
			s.mu.Unlock()
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make([]entity.Note, 0, len(loaded.Notes))
	seen := map[string]struct{}{}
	for _, n := range loaded.Notes {
		if n.Id == "" {
			continue
		}
		if _, dup := seen[n.Id]; dup {
			continue
		}
		seen[n.Id] = struct{}{}
		s.notes = append(s.notes, n)
	}
	s.sortLocked()
	s.reindexLocked()
	s.hydrated = true

	s.log.Info("store", "Notes store hydrated", map[string]interface{}{
		"count": len(s.notes),
	})
	return nil
}

// Ready reports whether hydration has completed. The HTTP layer must not
// serve note data before this flips.
func (s *NotesStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Add constructs a note with CreatedAt = UpdatedAt = now and inserts it.
// An empty id gets a generated uuid. Always succeeds.
func (s *NotesStore) Add(title, content, id string) entity.Note {
	if id == "" {
		id = uuid.NewString()
	}
	now := s.now()
	note := entity.Note{
		Id:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.notes = append([]entity.Note{note}, s.notes...)
	s.sortLocked()
	s.reindexLocked()
	s.bumpLocked()
	s.mu.Unlock()

	s.afterMutation()
	return note
}

// Update replaces title and content of the note with the given id and
// resets UpdatedAt. An unknown id is a silent no-op.
func (s *NotesStore) Update(id, title, content string) {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	updated := s.notes[pos]
	updated.Title = title
	updated.Content = content
	updated.UpdatedAt = s.now()

	// Fresh slice and fresh record so snapshot consumers see the change.
	next := make([]entity.Note, len(s.notes))
	copy(next, s.notes)
	next[pos] = updated
	s.notes = next

	s.sortLocked()
	s.reindexLocked()
	s.bumpLocked()
	s.mu.Unlock()

	s.afterMutation()
}

// Delete removes the note with the given id. An unknown id is a no-op and
// the remaining order is untouched.
func (s *NotesStore) Delete(id string) {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	next := make([]entity.Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:pos]...)
	next = append(next, s.notes[pos+1:]...)
	s.notes = next

	s.reindexLocked()
	s.bumpLocked()
	s.mu.Unlock()

	s.afterMutation()
}

// Get is a point lookup by id.
func (s *NotesStore) Get(id string) (entity.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.index[id]
	if !ok {
		return entity.Note{}, false
	}
	return s.notes[pos], true
}

// List returns a fresh copy of the collection, most recently touched
// first.
func (s *NotesStore) List() []entity.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Search filters the collection by case-insensitive title substring. An
// empty query returns the full list.
func (s *NotesStore) Search(query string) []entity.Note {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.List()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []entity.Note{}
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Title), query) {
			matches = append(matches, n)
		}
	}
	return matches
}

// Version is a monotonic change counter, bumped once per mutation.
func (s *NotesStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers an observer. Sends never block: a subscriber that
// falls behind misses intermediate versions, not the latest one it reads.
// The returned func cancels the subscription and closes the channel.
func (s *NotesStore) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if existing, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(existing)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// MarshalState serializes the current collection for write-through.
func (s *NotesStore) MarshalState() ([]byte, error) {
	s.mu.RLock()
	state := notesState{Notes: s.snapshotLocked()}
	s.mu.RUnlock()
	return json.Marshal(state)
}

func (s *NotesStore) sortLocked() {
	sort.SliceStable(s.notes, func(i, j int) bool {
		return s.notes[i].UpdatedAt.After(s.notes[j].UpdatedAt)
	})
}

func (s *NotesStore) reindexLocked() {
	index := make(map[string]int, len(s.notes))
	for i, n := range s.notes {
		index[n.Id] = i
	}
	s.index = index
}

func (s *NotesStore) snapshotLocked() []entity.Note {
	out := make([]entity.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *NotesStore) bumpLocked() {
	s.version++
	change := Change{Version: s.version, Notes: s.snapshotLocked()}
	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

func (s *NotesStore) afterMutation() {
	if s.publisher != nil {
		s.publisher.StoreChanged(NotesStoreName)
	}
}
