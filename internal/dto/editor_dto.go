package dto

type OpenSessionRequest struct {
	NoteId string `json:"note_id"`
}

type SessionResponse struct {
	SessionId string `json:"session_id"`
	NoteId    string `json:"note_id,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

type EditSessionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type EditSessionResponse struct {
	SessionId string `json:"session_id"`
	NoteId    string `json:"note_id,omitempty"`
	Saved     bool   `json:"saved"`
}

type CleanupSessionResponse struct {
	SessionId string `json:"session_id"`
	NoteId    string `json:"note_id,omitempty"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Saved     bool   `json:"saved"`
}

type DeleteNoteResponse struct {
	Deleted bool `json:"deleted"`
}
