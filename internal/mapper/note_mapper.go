package mapper

import (
	"notepocket/internal/dto"
	"notepocket/internal/entity"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToResponse(n entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (m *NoteMapper) ToResponseList(notes []entity.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, m.ToResponse(n))
	}
	return out
}
