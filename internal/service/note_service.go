package service

import (
	"notepocket/internal/dto"
	"notepocket/internal/mapper"
	"notepocket/internal/store"
)

type INoteService interface {
	List(query string) *dto.ListNotesResponse
	Show(id string) *dto.NoteResponse
	Delete(id string)
}

type noteService struct {
	notes      *store.NotesStore
	noteMapper *mapper.NoteMapper
}

func NewNoteService(notes *store.NotesStore) INoteService {
	return &noteService{
		notes:      notes,
		noteMapper: mapper.NewNoteMapper(),
	}
}

// List returns every note, most recently touched first, optionally
// filtered by title substring.
func (s *noteService) List(query string) *dto.ListNotesResponse {
	return &dto.ListNotesResponse{
		Notes: s.noteMapper.ToResponseList(s.notes.Search(query)),
	}
}

func (s *noteService) Show(id string) *dto.NoteResponse {
	note, ok := s.notes.Get(id)
	if !ok {
		return nil // Not found
	}
	res := s.noteMapper.ToResponse(note)
	return &res
}

// Delete is idempotent; removing an unknown id is a no-op.
func (s *noteService) Delete(id string) {
	s.notes.Delete(id)
}
