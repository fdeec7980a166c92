package service

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"notepocket/internal/dto"
	"notepocket/internal/editor"
	"notepocket/internal/pkg/logger"
	"notepocket/internal/pkg/serverutils"
	"notepocket/internal/repository/memory"
	"notepocket/pkg/cleanup"
)

type IEditorService interface {
	Open(req *dto.OpenSessionRequest) *dto.SessionResponse
	Edit(sessionId string, req *dto.EditSessionRequest) (*dto.EditSessionResponse, error)
	Close(sessionId string) (*dto.EditSessionResponse, error)
	DeleteNote(sessionId string) (*dto.DeleteNoteResponse, error)
	Cleanup(ctx context.Context, sessionId string) (*dto.CleanupSessionResponse, error)
}

type editorService struct {
	notes      editor.NoteStore
	sessions   *memory.SessionRepository
	cleanupSvc *cleanup.Service
	log        logger.ILogger
}

func NewEditorService(
	notes editor.NoteStore,
	sessions *memory.SessionRepository,
	cleanupSvc *cleanup.Service,
	log logger.ILogger,
) IEditorService {
	return &editorService{
		notes:      notes,
		sessions:   sessions,
		cleanupSvc: cleanupSvc,
		log:        log,
	}
}

// Open starts an editing session. With a note id the existing note seeds
// the draft; a missing note (or no id) starts a fresh unbound draft.
func (s *editorService) Open(req *dto.OpenSessionRequest) *dto.SessionResponse {
	session := editor.NewSession()
	session.Load(s.notes, req.NoteId)
	s.sessions.Save(session)

	return &dto.SessionResponse{
		SessionId: session.Id,
		NoteId:    session.NoteId,
		Title:     session.Title,
		Content:   session.Content,
	}
}

// Edit applies a field change and runs the autosave decision.
func (s *editorService) Edit(sessionId string, req *dto.EditSessionRequest) (*dto.EditSessionResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "editing session not found")
	}

	session.SetFields(req.Title, req.Content)
	saved := session.Save(s.notes)
	s.sessions.Save(session) // refresh TTL

	return &dto.EditSessionResponse{
		SessionId: session.Id,
		NoteId:    session.NoteId,
		Saved:     saved,
	}, nil
}

// Close runs the save decision one final time and discards the session,
// so no trailing edit is lost when the editor screen goes away.
func (s *editorService) Close(sessionId string) (*dto.EditSessionResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "editing session not found")
	}

	saved := session.Save(s.notes)
	s.sessions.Delete(sessionId)

	return &dto.EditSessionResponse{
		SessionId: session.Id,
		NoteId:    session.NoteId,
		Saved:     saved,
	}, nil
}

// DeleteNote removes the session's bound note. A pure empty draft has
// nothing to remove; the session is discarded either way.
func (s *editorService) DeleteNote(sessionId string) (*dto.DeleteNoteResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "editing session not found")
	}

	deleted := session.DeleteNote(s.notes)
	s.sessions.Delete(sessionId)

	return &dto.DeleteNoteResponse{Deleted: deleted}, nil
}

// Cleanup submits the draft to the text-improvement collaborator. Empty
// drafts are rejected before any network call. A response that arrives
// after the session moved on (expired, or rebound to another note) is
// discarded rather than applied to the wrong draft.
func (s *editorService) Cleanup(ctx context.Context, sessionId string) (*dto.CleanupSessionResponse, error) {
	session, ok := s.sessions.Get(sessionId)
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "editing session not found")
	}

	if session.Empty() {
		return nil, serverutils.NewValidationError("Nothing to clean up: the note is empty")
	}

	boundNoteId := session.NoteId
	result, err := s.cleanupSvc.Cleanup(ctx, session.Title, session.Content)
	if err != nil {
		return nil, err
	}

	current, ok := s.sessions.Get(sessionId)
	if !ok || current.NoteId != boundNoteId {
		s.log.Warn("editor", "Discarding stale cleanup result", map[string]interface{}{
			"session_id": sessionId,
		})
		return nil, fiber.NewError(fiber.StatusConflict, "editing session changed, cleanup result discarded")
	}

	current.SetFields(result.Title, result.Content)
	saved := current.Save(s.notes)
	s.sessions.Save(current)

	return &dto.CleanupSessionResponse{
		SessionId: current.Id,
		NoteId:    current.NoteId,
		Title:     current.Title,
		Content:   current.Content,
		Saved:     saved,
	}, nil
}
