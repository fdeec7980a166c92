package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepocket/internal/entity"
)

// recordingStore is a minimal NoteStore that counts writes.
type recordingStore struct {
	notes   map[string]entity.Note
	adds    int
	updates int
	deletes int
}

func newRecordingStore() *recordingStore {
	return &recordingStore{notes: map[string]entity.Note{}}
}

func (r *recordingStore) Add(title, content, id string) entity.Note {
	r.adds++
	now := time.Now()
	note := entity.Note{Id: id, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	r.notes[id] = note
	return note
}

func (r *recordingStore) Update(id, title, content string) {
	r.updates++
	if n, ok := r.notes[id]; ok {
		n.Title = title
		n.Content = content
		n.UpdatedAt = time.Now()
		r.notes[id] = n
	}
}

func (r *recordingStore) Delete(id string) {
	r.deletes++
	delete(r.notes, id)
}

func (r *recordingStore) Get(id string) (entity.Note, bool) {
	n, ok := r.notes[id]
	return n, ok
}

func TestEmptyDraftIsNeverSaved(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()
	s.Load(store, "")

	s.SetFields("", "")
	assert.False(t, s.Save(store))

	s.SetFields("   ", "\n\t ")
	assert.False(t, s.Save(store))

	assert.Equal(t, 0, store.adds)
	assert.Equal(t, 0, store.updates)
	assert.Empty(t, s.NoteId)
}

func TestFirstSaveCreatesAndBinds(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()
	s.Load(store, "")

	s.SetFields("Groceries", "milk, eggs")
	require.True(t, s.Save(store))

	require.NotEmpty(t, s.NoteId)
	assert.Equal(t, 1, store.adds)

	t.Run("later saves update the bound note", func(t *testing.T) {
		bound := s.NoteId
		s.SetFields("Groceries", "milk, eggs, bread")
		require.True(t, s.Save(store))

		assert.Equal(t, bound, s.NoteId)
		assert.Equal(t, 1, store.adds)
		assert.Equal(t, 1, store.updates)
	})
}

func TestRepeatedSaveIsIdempotent(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()
	s.Load(store, "")

	s.SetFields("Title", "Body")
	require.True(t, s.Save(store))
	assert.False(t, s.Save(store), "identical content must not write again")

	// Whitespace-only differences are still the same snapshot.
	s.SetFields("Title  ", "\nBody ")
	assert.False(t, s.Save(store))

	assert.Equal(t, 1, store.adds)
	assert.Equal(t, 0, store.updates)
}

func TestBlankTitleDefaultsToUntitled(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()
	s.Load(store, "")

	s.SetFields("", "just some content")
	require.True(t, s.Save(store))

	saved, ok := store.Get(s.NoteId)
	require.True(t, ok)
	assert.Equal(t, DefaultTitle, saved.Title)
	assert.Equal(t, "just some content", saved.Content)
}

func TestLoadExistingNote(t *testing.T) {
	store := newRecordingStore()
	store.Add("Existing", "content", "n1")
	store.adds = 0

	s := NewSession()
	s.Load(store, "n1")

	assert.Equal(t, "n1", s.NoteId)
	assert.Equal(t, "Existing", s.Title)
	assert.Equal(t, "content", s.Content)

	t.Run("saving the loaded content is a no-op", func(t *testing.T) {
		assert.False(t, s.Save(store))
		assert.Equal(t, 0, store.updates)
	})

	t.Run("a real edit updates in place", func(t *testing.T) {
		s.SetFields("Existing", "new content")
		require.True(t, s.Save(store))
		assert.Equal(t, 1, store.updates)
		assert.Equal(t, 0, store.adds)
	})
}

func TestLoadMissingNoteFallsBackToDraft(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()
	s.Load(store, "no-such-note")

	assert.Empty(t, s.NoteId)
	assert.Empty(t, s.Title)
	assert.True(t, s.Loaded())

	s.SetFields("fresh", "draft")
	require.True(t, s.Save(store))
	assert.Equal(t, 1, store.adds)
}

func TestNoAutosaveBeforeLoad(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()

	s.SetFields("typed", "early")
	assert.False(t, s.Save(store))
	assert.Equal(t, 0, store.adds)
}

func TestDeleteNote(t *testing.T) {
	store := newRecordingStore()
	s := NewSession()
	s.Load(store, "")

	t.Run("empty draft has nothing to remove", func(t *testing.T) {
		assert.False(t, s.DeleteNote(store))
		assert.Equal(t, 0, store.deletes)
	})

	t.Run("bound note is removed", func(t *testing.T) {
		s.SetFields("doomed", "bye")
		require.True(t, s.Save(store))

		assert.True(t, s.DeleteNote(store))
		assert.Equal(t, 1, store.deletes)
		_, ok := store.Get(s.NoteId)
		assert.False(t, ok)
	})
}
