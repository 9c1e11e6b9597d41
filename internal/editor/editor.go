// Package editor is the quick answer dialog without any rendering: it owns
// the draft, loads records for editing, validates and saves.
//
// An Editor is driven from a single event loop and is not safe for
// concurrent use. Requests built by Fetch and PrepareSubmit may run on any
// goroutine; their results come back through ApplyLoaded and ApplySubmitted,
// which drop anything belonging to a session that has since been closed.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/quickanswers/internal/draft"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/types"
	"github.com/thenoetrevino/quickanswers/internal/validation"
)

// User-facing notification texts
const (
	MsgAddFieldEmpty    = "write at least one quick message before adding more"
	MsgRemoveLastField  = "a quick answer needs at least one message"
	MsgSaved            = "Quick answer saved"
	MsgCreated          = "Quick answer created"
	msgMalformedMessage = "stored message could not be read"
)

var (
	// ErrClosed is returned for operations that need an open dialog
	ErrClosed = errors.New("editor is closed")
	// ErrBusy is returned while a load or a submit is in flight
	ErrBusy = errors.New("editor is busy")
)

// Store is the backend the editor reads from and writes to.
type Store interface {
	Get(ctx context.Context, id types.QuickAnswerID) (*models.QuickAnswer, error)
	Create(ctx context.Context, input models.QuickAnswerInput) (*models.QuickAnswer, error)
	Update(ctx context.Context, id types.QuickAnswerID, input models.QuickAnswerInput) (*models.QuickAnswer, error)
}

// Options configure one dialog session.
type Options struct {
	// ID selects edit mode; empty means create.
	ID types.QuickAnswerID
	// Initial seeds the draft. In edit mode the fetched record is merged over it.
	Initial *draft.Draft
	// OnSave receives the record returned by a successful create.
	OnSave func(*models.QuickAnswer)
}

// Ticket identifies the session a request was issued for.
type Ticket struct {
	generation uint64
}

// LoadResult is the outcome of a Fetch request.
type LoadResult struct {
	Ticket Ticket
	Record *models.QuickAnswer
	Err    error
}

// SubmitResult is the outcome of a PrepareSubmit request.
type SubmitResult struct {
	Ticket Ticket
	Record *models.QuickAnswer
	Err    error
}

// Editor holds the state of the quick answer dialog.
type Editor struct {
	store    Store
	notifier notifications.Notifier
	logger   *slog.Logger

	phase  Phase
	id     types.QuickAnswerID
	onSave func(*models.QuickAnswer)
	draft  *draft.Draft
	errs   validation.Errors

	// ctx is cancelled when the session closes; generation changes with it
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
}

// Option customizes an Editor.
type Option func(*Editor)

// WithLogger overrides the logger (defaults to slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates a closed editor.
func New(store Store, notifier notifications.Notifier, opts ...Option) *Editor {
	if notifier == nil {
		notifier = notifications.Discard
	}
	e := &Editor{
		store:    store,
		notifier: notifier,
		logger:   slog.Default(),
		phase:    Closed,
		draft:    draft.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Phase returns the current state.
func (e *Editor) Phase() Phase { return e.phase }

// IsOpen reports whether the dialog is shown.
func (e *Editor) IsOpen() bool { return e.phase != Closed }

// EditMode reports whether the session edits an existing record.
func (e *Editor) EditMode() bool { return !e.id.IsZero() }

// ID returns the record being edited, if any.
func (e *Editor) ID() types.QuickAnswerID { return e.id }

// Draft returns a copy of the current draft.
func (e *Editor) Draft() *draft.Draft { return e.draft.Clone() }

// Keys returns the message field keys in display order.
func (e *Editor) Keys() []string { return e.draft.Keys() }

// Errors returns the field errors of the last rejected submit.
func (e *Editor) Errors() validation.Errors { return e.errs }

// Open starts a session. Create mode is immediately Ready; edit mode enters
// Loading and expects the caller to run Fetch (or Load). Opening an already
// open editor closes the previous session first.
func (e *Editor) Open(ctx context.Context, opts Options) Ticket {
	if e.IsOpen() {
		e.Close()
	}

	e.generation++
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.id = opts.ID
	e.onSave = opts.OnSave
	e.errs = nil

	if opts.Initial != nil {
		e.draft = opts.Initial.Clone()
	} else {
		e.draft = draft.New()
	}

	if e.EditMode() {
		e.phase = Loading
	} else {
		e.phase = Ready
	}

	e.logger.Debug("editor opened", "id", e.id, "phase", e.phase)
	return e.ticket()
}

// Close ends the session regardless of phase. In-flight requests are
// cancelled and their results ignored; the draft returns to one empty field.
func (e *Editor) Close() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.generation++
	e.phase = Closed
	e.id = ""
	e.onSave = nil
	e.errs = nil
	e.draft.Clear()
	e.logger.Debug("editor closed")
}

func (e *Editor) ticket() Ticket {
	return Ticket{generation: e.generation}
}

func (e *Editor) current(t Ticket) bool {
	return e.IsOpen() && t.generation == e.generation
}

// Fetch returns the request that loads the record of the current edit
// session. The request touches no editor state.
func (e *Editor) Fetch() (func(ctx context.Context) LoadResult, error) {
	if e.phase != Loading {
		return nil, fmt.Errorf("fetch in phase %s: %w", e.phase, ErrBusy)
	}
	store, id, session, t := e.store, e.id, e.ctx, e.ticket()

	return func(ctx context.Context) LoadResult {
		ctx, cancel := joinContext(ctx, session)
		defer cancel()
		rec, err := store.Get(ctx, id)
		return LoadResult{Ticket: t, Record: rec, Err: err}
	}, nil
}

// Load fetches the record synchronously and applies it.
func (e *Editor) Load(ctx context.Context) error {
	fetch, err := e.Fetch()
	if err != nil {
		return err
	}
	_, err = e.applyLoaded(fetch(ctx))
	return err
}

// ApplyLoaded applies a fetch result and reports whether it was used.
// Results for a closed or replaced session are dropped.
func (e *Editor) ApplyLoaded(res LoadResult) bool {
	applied, _ := e.applyLoaded(res)
	return applied
}

// applyLoaded also returns the error that was reported to the user.
func (e *Editor) applyLoaded(res LoadResult) (bool, error) {
	if !e.current(res.Ticket) || e.phase != Loading {
		e.logger.Debug("dropping stale load result", "generation", res.Ticket.generation)
		if res.Err != nil {
			return false, res.Err
		}
		return false, ErrClosed
	}
	e.phase = Ready

	if res.Err != nil {
		e.logger.Error("failed to load quick answer", "id", e.id, "error", res.Err)
		e.notifier.Add(notifications.Error, res.Err.Error())
		return true, res.Err
	}
	if res.Record == nil {
		return true, nil
	}

	entries, err := packed.Decode(res.Record.Message)
	if err != nil {
		e.logger.Error("failed to decode quick answer", "id", e.id, "error", err)
		e.notifier.Add(notifications.Error, msgMalformedMessage+": "+err.Error())
		return true, err
	}

	e.draft.Merge(draft.FromEntries(res.Record.Shortcut, entries))
	e.logger.Info("quick answer loaded", "id", e.id, "fields", e.draft.Len())
	return true, nil
}

// SetShortcut updates the shortcut.
func (e *Editor) SetShortcut(s string) {
	e.draft.Shortcut = s
}

// SetMessage updates an existing message field. Unknown keys are ignored so
// the visible fields always match the draft.
func (e *Editor) SetMessage(key, value string) {
	if _, ok := e.draft.Value(key); ok {
		e.draft.Set(key, value)
	}
}

// AddField appends a message field and returns its key. It returns "" when
// the field was refused.
func (e *Editor) AddField() string {
	if e.phase != Ready {
		return ""
	}

	if e.EditMode() {
		if e.draft.Len() == 0 {
			e.draft.Reset()
			return packed.PrimaryKey
		}
		return e.draft.Append()
	}

	if !e.draft.HasContent() {
		e.notifier.Add(notifications.Warning, MsgAddFieldEmpty)
		return ""
	}
	return e.draft.Append()
}

// RemoveField deletes a message field and reports whether it was removed.
// Create mode keeps its last field; edit mode may end with none.
func (e *Editor) RemoveField(key string) bool {
	if e.phase != Ready {
		return false
	}
	if !e.EditMode() && e.draft.Len() <= 1 {
		if _, ok := e.draft.Value(key); ok {
			e.notifier.Add(notifications.Warning, MsgRemoveLastField)
		}
		return false
	}
	if !e.draft.Remove(key) {
		return false
	}
	e.errs = removeFieldError(e.errs, key)
	return true
}

// PrepareSubmit validates and packs the draft, moves to Submitting and
// returns the request that saves it. Validation failures are returned as
// validation.Errors and leave the editor Ready.
func (e *Editor) PrepareSubmit() (func(ctx context.Context) SubmitResult, error) {
	switch e.phase {
	case Closed:
		return nil, ErrClosed
	case Loading, Submitting:
		return nil, fmt.Errorf("submit in phase %s: %w", e.phase, ErrBusy)
	}

	entries := e.draft.Entries()
	if errs := validation.Validate(e.draft.Shortcut, entries); len(errs) > 0 {
		e.errs = errs
		return nil, errs
	}
	e.errs = nil

	message, err := packed.Encode(entries)
	if err != nil {
		return nil, fmt.Errorf("pack message: %w", err)
	}

	input := models.QuickAnswerInput{Shortcut: e.draft.Shortcut, Message: message}
	store, id, session, t := e.store, e.id, e.ctx, e.ticket()
	e.phase = Submitting

	return func(ctx context.Context) SubmitResult {
		ctx, cancel := joinContext(ctx, session)
		defer cancel()

		var rec *models.QuickAnswer
		var err error
		if id.IsZero() {
			rec, err = store.Create(ctx, input)
		} else {
			rec, err = store.Update(ctx, id, input)
		}
		return SubmitResult{Ticket: t, Record: rec, Err: err}
	}, nil
}

// ApplySubmitted applies a save result and reports whether it was used.
// Success closes the editor; failure keeps the draft and returns to Ready.
func (e *Editor) ApplySubmitted(res SubmitResult) bool {
	if !e.current(res.Ticket) || e.phase != Submitting {
		e.logger.Debug("dropping stale submit result", "generation", res.Ticket.generation)
		return false
	}

	if res.Err != nil {
		e.phase = Ready
		e.logger.Error("failed to save quick answer", "id", e.id, "error", res.Err)
		e.notifier.Add(notifications.Error, res.Err.Error())
		return true
	}

	created := !e.EditMode()
	onSave := e.onSave
	e.logger.Info("quick answer saved", "id", e.id, "created", created)
	e.Close()

	if created && onSave != nil {
		onSave(res.Record)
	}
	if created {
		e.notifier.Add(notifications.Success, MsgCreated)
	} else {
		e.notifier.Add(notifications.Success, MsgSaved)
	}
	return true
}

// Submit validates and saves synchronously.
func (e *Editor) Submit(ctx context.Context) error {
	save, err := e.PrepareSubmit()
	if err != nil {
		return err
	}
	res := save(ctx)
	e.ApplySubmitted(res)
	return res.Err
}

// joinContext returns a context cancelled when either parent or session is.
func joinContext(parent, session context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	if session.Err() != nil {
		cancel()
		return ctx, cancel
	}
	stop := context.AfterFunc(session, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func removeFieldError(errs validation.Errors, key string) validation.Errors {
	if len(errs) == 0 {
		return errs
	}
	out := errs[:0:0]
	for _, fe := range errs {
		if fe.Field != key {
			out = append(out, fe)
		}
	}
	return out
}
