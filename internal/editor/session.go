// Package editor carries the screen-level autosave logic: it bridges live
// title/content edits to note store writes while guaranteeing no duplicate
// notes, no redundant writes, and no lost trailing edit.
package editor

import (
	"strings"

	"github.com/google/uuid"

	"notepocket/internal/entity"
)

// DefaultTitle is substituted when a note is saved with a blank title.
const DefaultTitle = "Untitled"

// NoteStore is the slice of the notes store a session needs.
type NoteStore interface {
	Add(title, content, id string) entity.Note
	Update(id, title, content string)
	Delete(id string)
	Get(id string) (entity.Note, bool)
}

// Session is one editing session: a draft bound to at most one note.
// The note binding happens on the first real save and sticks for the rest
// of the session. A session expects its operations to arrive in order
// (the UI event loop it models is single-threaded); it carries no lock.
type Session struct {
	Id      string
	NoteId  string
	Title   string
	Content string

	lastSavedTitle   string
	lastSavedContent string
	loaded           bool
}

// NewSession creates an unloaded session. No autosave fires until Load
// has run.
func NewSession() *Session {
	return &Session{Id: uuid.NewString()}
}

// Load seeds the session. With a note id it fetches the existing note and
// primes the saved snapshot from its trimmed fields; a missing note falls
// back to a fresh unbound draft, as does an empty id.
func (s *Session) Load(notes NoteStore, noteId string) {
	if noteId != "" {
		if existing, ok := notes.Get(noteId); ok {
			s.NoteId = existing.Id
			s.Title = existing.Title
			s.Content = existing.Content
			s.lastSavedTitle = strings.TrimSpace(existing.Title)
			s.lastSavedContent = strings.TrimSpace(existing.Content)
			s.loaded = true
			return
		}
	}

	s.NoteId = ""
	s.Title = ""
	s.Content = ""
	s.lastSavedTitle = ""
	s.lastSavedContent = ""
	s.loaded = true
}

// Loaded reports whether the initial load has completed. Edit-mode
// sessions must not autosave before this.
func (s *Session) Loaded() bool {
	return s.loaded
}

// SetFields applies a field change from the editor.
func (s *Session) SetFields(title, content string) {
	s.Title = title
	s.Content = content
}

// Save runs the save decision and reports whether a store write happened:
// empty drafts and unchanged snapshots are skipped, the first real save of
// an unbound draft creates the note and binds its id, every later save
// updates in place.
func (s *Session) Save(notes NoteStore) bool {
	if !s.loaded {
		return false
	}

	trimmedTitle := strings.TrimSpace(s.Title)
	trimmedContent := strings.TrimSpace(s.Content)

	// Never persist an empty note.
	if trimmedTitle == "" && trimmedContent == "" {
		return false
	}

	// Nothing changed since the last save.
	if trimmedTitle == s.lastSavedTitle && trimmedContent == s.lastSavedContent {
		return false
	}

	title := trimmedTitle
	if title == "" {
		title = DefaultTitle
	}

	if s.NoteId != "" {
		notes.Update(s.NoteId, title, trimmedContent)
	} else {
		created := notes.Add(title, trimmedContent, uuid.NewString())
		s.NoteId = created.Id
	}

	s.lastSavedTitle = trimmedTitle
	s.lastSavedContent = trimmedContent
	return true
}

// DeleteNote removes the bound note, if any. A session that never
// materialized a note has nothing to remove; discarding it is enough.
func (s *Session) DeleteNote(notes NoteStore) bool {
	if s.NoteId == "" {
		return false
	}
	notes.Delete(s.NoteId)
	return true
}

// Empty reports whether both fields are blank after trimming.
func (s *Session) Empty() bool {
	return strings.TrimSpace(s.Title) == "" && strings.TrimSpace(s.Content) == ""
}
