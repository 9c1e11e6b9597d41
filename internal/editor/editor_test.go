package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/thenoetrevino/quickanswers/internal/draft"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
	"github.com/thenoetrevino/quickanswers/internal/testutil"
	"github.com/thenoetrevino/quickanswers/internal/validation"
)

func newTestEditor(store Store) (*Editor, *notifications.State) {
	notes := notifications.NewState(0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, notes, WithLogger(logger)), notes
}

func lastNotification(t *testing.T, notes *notifications.State) notifications.Notification {
	t.Helper()
	n, ok := notes.Last()
	if !ok {
		t.Fatal("expected a notification")
	}
	return n
}

func TestOpen_CreateModeStartsReadyWithOneField(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})

	if e.Phase() != Ready {
		t.Errorf("Phase() = %v, want ready", e.Phase())
	}
	if keys := e.Keys(); len(keys) != 1 || keys[0] != "message" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestOpen_SeedsFromInitial(t *testing.T) {
	initial := draft.New()
	initial.Shortcut = "hey"
	initial.Set("message", "Hello there!")

	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{Initial: initial})

	d := e.Draft()
	if d.Shortcut != "hey" {
		t.Errorf("Shortcut = %q", d.Shortcut)
	}
	if v, _ := d.Value("message"); v != "Hello there!" {
		t.Errorf("message = %q", v)
	}

	e.SetShortcut("changed")
	if initial.Shortcut != "hey" {
		t.Error("editing must not mutate the caller's initial draft")
	}
}

func TestAddField_CreateModeGuard(t *testing.T) {
	e, notes := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})

	if key := e.AddField(); key != "" {
		t.Errorf("AddField() on empty draft = %q, want refusal", key)
	}
	if len(e.Keys()) != 1 {
		t.Errorf("field count = %d, want 1", len(e.Keys()))
	}
	n := lastNotification(t, notes)
	if n.Severity != notifications.Warning || n.Message != MsgAddFieldEmpty {
		t.Errorf("notification = %+v", n)
	}

	e.SetMessage("message", "Hello there!")
	key := e.AddField()
	if key != "message1" {
		t.Errorf("AddField() = %q, want message1", key)
	}
	if keys := e.Keys(); len(keys) != 2 || keys[1] != "message1" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestAddField_WhitespaceIsNotContent(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})
	e.SetMessage("message", "   \n")

	if key := e.AddField(); key != "" {
		t.Errorf("AddField() = %q, want refusal", key)
	}
}

func TestKeysAreNeverReused(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})
	e.SetMessage("message", "Hello there!")

	first := e.AddField()
	second := e.AddField()
	if !e.RemoveField(second) {
		t.Fatalf("RemoveField(%q) = false", second)
	}
	third := e.AddField()

	if first != "message1" || second != "message2" || third != "message3" {
		t.Errorf("keys = %s, %s, %s", first, second, third)
	}
	if keys := strings.Join(e.Keys(), ","); keys != "message,message1,message3" {
		t.Errorf("Keys() = %s", keys)
	}
}

func TestRemoveField_CreateModeKeepsLastField(t *testing.T) {
	e, notes := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})

	if e.RemoveField("message") {
		t.Error("RemoveField() removed the only field")
	}
	if n := lastNotification(t, notes); n.Severity != notifications.Warning {
		t.Errorf("notification = %+v", n)
	}
	if e.RemoveField("message7") {
		t.Error("RemoveField() of unknown key returned true")
	}
}

func TestCloseResetsFields(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})
	e.SetShortcut("hi")
	e.SetMessage("message", "Hello there!")
	for range 3 {
		if e.AddField() == "" {
			t.Fatal("AddField() refused")
		}
	}
	if len(e.Keys()) != 4 {
		t.Fatalf("field count = %d, want 4", len(e.Keys()))
	}

	e.Close()
	if e.Phase() != Closed {
		t.Errorf("Phase() = %v", e.Phase())
	}
	if keys := e.Keys(); len(keys) != 1 || keys[0] != "message" {
		t.Errorf("Keys() after close = %v", keys)
	}

	e.Open(context.Background(), Options{})
	if keys := e.Keys(); len(keys) != 1 || keys[0] != "message" {
		t.Errorf("Keys() after reopen = %v", keys)
	}
	if e.Draft().Shortcut != "" {
		t.Error("shortcut survived close")
	}
	if e.AddField() != "" {
		t.Error("content survived close")
	}
}

func TestSubmit_CreateEndToEnd(t *testing.T) {
	store := &testutil.Store{}
	e, notes := newTestEditor(store)

	var saved *models.QuickAnswer
	e.Open(context.Background(), Options{OnSave: func(rec *models.QuickAnswer) { saved = rec }})
	e.SetShortcut("hi")
	e.SetMessage("message", "Hello there!")

	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(store.Created) != 1 {
		t.Fatalf("create calls = %d", len(store.Created))
	}
	want := models.QuickAnswerInput{Shortcut: "hi", Message: "message/*/Hello there!"}
	if store.Created[0] != want {
		t.Errorf("payload = %+v, want %+v", store.Created[0], want)
	}
	if saved == nil || saved.ID != "42" {
		t.Errorf("OnSave record = %+v", saved)
	}
	if e.Phase() != Closed {
		t.Errorf("Phase() = %v, want closed", e.Phase())
	}
	if n := lastNotification(t, notes); n.Severity != notifications.Success {
		t.Errorf("notification = %+v", n)
	}
}

func TestSubmit_ValidationBlocksRequest(t *testing.T) {
	store := &testutil.Store{}
	e, _ := newTestEditor(store)
	e.Open(context.Background(), Options{})
	e.SetShortcut("h")
	e.SetMessage("message", "short")

	err := e.Submit(context.Background())
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	if verrs.For("shortcut") != validation.MsgTooShort || verrs.For("message") != validation.MsgTooShort {
		t.Errorf("errors = %v", verrs)
	}
	if len(e.Errors()) != 2 {
		t.Errorf("Errors() = %v", e.Errors())
	}
	if len(store.Created) != 0 {
		t.Error("request sent despite validation failure")
	}
	if e.Phase() != Ready {
		t.Errorf("Phase() = %v", e.Phase())
	}
}

func TestSubmit_DelimiterInSecondaryField(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})
	e.SetShortcut("hi")
	e.SetMessage("message", "Hello there!")
	key := e.AddField()
	e.SetMessage(key, "a/:/b")

	err := e.Submit(context.Background())
	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs.For(key) != validation.MsgDelimiter {
		t.Errorf("Submit() error = %v", err)
	}
}

func TestSubmit_SeparatorCollisionBlocksRequest(t *testing.T) {
	store := &testutil.Store{}
	e, _ := newTestEditor(store)
	e.Open(context.Background(), Options{})
	e.SetShortcut("hi")
	e.SetMessage("message", "Hello there a/:")
	e.SetMessage(e.AddField(), "bye bye!")

	err := e.Submit(context.Background())
	var verrs validation.Errors
	if !errors.As(err, &verrs) || verrs.For("message") != validation.MsgSeparator {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(store.Created) != 0 {
		t.Errorf("corrupting payload was sent: %+v", store.Created)
	}
	if e.Phase() != Ready {
		t.Errorf("Phase() = %v, want ready", e.Phase())
	}
}

func TestSubmit_SaveErrorKeepsDraft(t *testing.T) {
	store := &testutil.Store{SaveErr: errors.New("quick answers api: http 500: boom")}
	e, notes := newTestEditor(store)

	called := false
	e.Open(context.Background(), Options{OnSave: func(*models.QuickAnswer) { called = true }})
	e.SetShortcut("hi")
	e.SetMessage("message", "Hello there!")

	if err := e.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("OnSave called on failure")
	}
	if e.Phase() != Ready {
		t.Errorf("Phase() = %v, want ready", e.Phase())
	}
	if v, _ := e.Draft().Value("message"); v != "Hello there!" {
		t.Errorf("draft lost: %q", v)
	}
	n := lastNotification(t, notes)
	if n.Severity != notifications.Error || !strings.Contains(n.Message, "boom") {
		t.Errorf("notification = %+v", n)
	}
}

func TestSubmit_RefusedWhileSubmitting(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	e.Open(context.Background(), Options{})
	e.SetShortcut("hi")
	e.SetMessage("message", "Hello there!")

	if _, err := e.PrepareSubmit(); err != nil {
		t.Fatalf("PrepareSubmit() error = %v", err)
	}
	if e.Phase() != Submitting {
		t.Fatalf("Phase() = %v", e.Phase())
	}
	if _, err := e.PrepareSubmit(); !errors.Is(err, ErrBusy) {
		t.Errorf("second PrepareSubmit() error = %v, want ErrBusy", err)
	}
	if e.AddField() != "" {
		t.Error("AddField() allowed while submitting")
	}
}

func TestSubmit_Closed(t *testing.T) {
	e, _ := newTestEditor(&testutil.Store{})
	if err := e.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() error = %v", err)
	}
}

func TestEdit_DecodesFetchedRecord(t *testing.T) {
	store := &testutil.Store{Record: &models.QuickAnswer{Shortcut: "hi", Message: "message/:/message1/*/Hi/:/Bye"}}
	e, _ := newTestEditor(store)

	e.Open(context.Background(), Options{ID: "7"})
	if e.Phase() != Loading {
		t.Fatalf("Phase() = %v, want loading", e.Phase())
	}
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	d := e.Draft()
	if got := strings.Join(d.Keys(), ","); got != "message,message1" {
		t.Errorf("Keys() = %s", got)
	}
	if v, _ := d.Value("message"); v != "Hi" {
		t.Errorf("message = %q", v)
	}
	if v, _ := d.Value("message1"); v != "Bye" {
		t.Errorf("message1 = %q", v)
	}
	if d.Shortcut != "hi" {
		t.Errorf("Shortcut = %q", d.Shortcut)
	}
	if e.Phase() != Ready {
		t.Errorf("Phase() = %v", e.Phase())
	}
	if next := e.AddField(); next != "message2" {
		t.Errorf("AddField() = %q, want message2", next)
	}
}

func TestEdit_MergesOverInitial(t *testing.T) {
	store := &testutil.Store{Record: &models.QuickAnswer{Shortcut: "hi", Message: "message/*/Fetched body"}}
	e, _ := newTestEditor(store)

	initial := draft.New()
	initial.Shortcut = "seed"
	initial.Set("message", "Seeded body")
	initial.Set("message4", "Only in seed")

	e.Open(context.Background(), Options{ID: "7", Initial: initial})
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	d := e.Draft()
	if d.Shortcut != "hi" {
		t.Errorf("Shortcut = %q", d.Shortcut)
	}
	if v, _ := d.Value("message"); v != "Fetched body" {
		t.Errorf("message = %q", v)
	}
	if v, _ := d.Value("message4"); v != "Only in seed" {
		t.Errorf("message4 = %q", v)
	}
}

func TestEdit_FetchErrorKeepsState(t *testing.T) {
	store := &testutil.Store{GetErr: models.ErrNotFound}
	e, notes := newTestEditor(store)

	e.Open(context.Background(), Options{ID: "7"})
	if err := e.Load(context.Background()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Load() error = %v", err)
	}
	if !e.IsOpen() || e.Phase() != Ready {
		t.Errorf("Phase() = %v, want ready", e.Phase())
	}
	if keys := e.Keys(); len(keys) != 1 {
		t.Errorf("Keys() = %v", keys)
	}
	n := lastNotification(t, notes)
	if n.Severity != notifications.Error || n.Message != models.ErrNotFound.Error() {
		t.Errorf("notification = %+v", n)
	}
}

func TestEdit_MalformedMessage(t *testing.T) {
	store := &testutil.Store{Record: &models.QuickAnswer{Shortcut: "hi", Message: "message/:/message1/*/only one"}}
	e, notes := newTestEditor(store)

	e.Open(context.Background(), Options{ID: "7"})
	_ = e.Load(context.Background())

	if n := lastNotification(t, notes); n.Severity != notifications.Error {
		t.Errorf("notification = %+v", n)
	}
	if e.Draft().Shortcut != "" {
		t.Error("draft changed despite decode failure")
	}
}

func TestEdit_LateResultAfterCloseIsDropped(t *testing.T) {
	store := &testutil.Store{Record: &models.QuickAnswer{Shortcut: "hi", Message: "message/*/Fetched body"}}
	e, notes := newTestEditor(store)

	e.Open(context.Background(), Options{ID: "7"})
	fetch, err := e.Fetch()
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	e.Close()

	res := fetch(context.Background())
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("fetch after close error = %v, want context.Canceled", res.Err)
	}
	if e.ApplyLoaded(res) {
		t.Error("ApplyLoaded() accepted a result from a closed session")
	}
	if e.ApplyLoaded(LoadResult{Ticket: res.Ticket, Record: store.Record}) {
		t.Error("ApplyLoaded() accepted a stale ticket")
	}
	if notes.HasAny() {
		t.Errorf("unexpected notifications: %v", notes.All())
	}

	e.Open(context.Background(), Options{})
	if e.ApplyLoaded(LoadResult{Ticket: res.Ticket, Record: store.Record}) {
		t.Error("ApplyLoaded() accepted a result from a previous session")
	}
	if e.Draft().Shortcut != "" {
		t.Error("stale result leaked into the new session")
	}
}

func TestEdit_UpdateAndRemoveToZero(t *testing.T) {
	store := &testutil.Store{Record: &models.QuickAnswer{Shortcut: "hi", Message: "message/:/message1/*/Hello there!/:/Bye bye"}}
	e, _ := newTestEditor(store)

	e.Open(context.Background(), Options{ID: "9"})
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !e.RemoveField("message1") {
		t.Fatal("RemoveField(message1) = false")
	}
	if err := e.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if store.UpdatedID != "9" || store.Updated[0].Message != "message/*/Hello there!" {
		t.Errorf("update = %s %+v", store.UpdatedID, store.Updated)
	}

	e.Open(context.Background(), Options{ID: "9"})
	_ = e.Load(context.Background())
	e.RemoveField("message")
	e.RemoveField("message1")
	if len(e.Keys()) != 0 {
		t.Fatalf("Keys() = %v, want none", e.Keys())
	}
	if key := e.AddField(); key != "message" || len(e.Keys()) != 1 {
		t.Errorf("AddField() with no fields = %q, keys %v", key, e.Keys())
	}
}

func TestOpen_ReplacesPreviousSession(t *testing.T) {
	store := &testutil.Store{Record: &models.QuickAnswer{Shortcut: "hi", Message: "message/*/Fetched body"}}
	e, _ := newTestEditor(store)

	first := e.Open(context.Background(), Options{ID: "1"})
	second := e.Open(context.Background(), Options{})
	if first == second {
		t.Error("tickets of different sessions must differ")
	}
	if e.EditMode() {
		t.Error("second session should be create mode")
	}
}
