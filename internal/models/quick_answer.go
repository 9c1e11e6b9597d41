package models

import (
	"time"

	"github.com/thenoetrevino/quickanswers/internal/types"
)

// QuickAnswer is a canned response template as stored by the backend.
// Message holds one or more bodies in the packed format (see package packed).
type QuickAnswer struct {
	ID        types.QuickAnswerID `json:"id,omitempty"`
	Shortcut  string              `json:"shortcut"`
	Message   string              `json:"message"`
	CreatedAt time.Time           `json:"createdAt,omitzero"`
	UpdatedAt time.Time           `json:"updatedAt,omitzero"`
}

// QuickAnswerInput is the body sent on create and update.
type QuickAnswerInput struct {
	Shortcut string `json:"shortcut"`
	Message  string `json:"message"`
}
