package entity

import (
	"time"
)

// Note is the sole persisted entity: a short text note identified by an
// opaque string id. Id and CreatedAt are fixed at creation, UpdatedAt is
// reset on every mutation.
type Note struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
