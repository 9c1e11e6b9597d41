// Package testutil holds fakes shared by the editor, dialog and command tests.
package testutil

import (
	"context"

	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

// CreatedID is the id Store assigns to every created record
const CreatedID types.QuickAnswerID = "42"

// Store is an in-memory editor.Store that records every call.
// Get returns a copy of Record stamped with the requested id.
type Store struct {
	Record  *models.QuickAnswer
	GetErr  error
	SaveErr error

	Created   []models.QuickAnswerInput
	Updated   []models.QuickAnswerInput
	UpdatedID types.QuickAnswerID
	GetCalls  int
}

func (s *Store) Get(ctx context.Context, id types.QuickAnswerID) (*models.QuickAnswer, error) {
	s.GetCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if s.Record == nil {
		return nil, models.ErrNotFound
	}
	rec := *s.Record
	rec.ID = id
	return &rec, nil
}

func (s *Store) Create(ctx context.Context, input models.QuickAnswerInput) (*models.QuickAnswer, error) {
	if s.SaveErr != nil {
		return nil, s.SaveErr
	}
	s.Created = append(s.Created, input)
	return &models.QuickAnswer{ID: CreatedID, Shortcut: input.Shortcut, Message: input.Message}, nil
}

func (s *Store) Update(ctx context.Context, id types.QuickAnswerID, input models.QuickAnswerInput) (*models.QuickAnswer, error) {
	if s.SaveErr != nil {
		return nil, s.SaveErr
	}
	s.UpdatedID = id
	s.Updated = append(s.Updated, input)
	return &models.QuickAnswer{ID: id, Shortcut: input.Shortcut, Message: input.Message}, nil
}
