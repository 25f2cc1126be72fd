package model

import "time"

// Note is a free-form text record.
type Note struct {
	ID        int       `json:"-"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created"`
}
