package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestQuickAnswer_DecodeBackendRecord(t *testing.T) {
	body := `{
		"id": 7,
		"shortcut": "hi",
		"message": "message/*/Hello there!",
		"createdAt": "2024-03-01T10:00:00.000Z",
		"updatedAt": "2024-03-02T11:30:00.000Z"
	}`

	var qa QuickAnswer
	if err := json.Unmarshal([]byte(body), &qa); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if qa.ID != "7" {
		t.Errorf("ID = %q, want 7", qa.ID)
	}
	if qa.Shortcut != "hi" {
		t.Errorf("Shortcut = %q, want hi", qa.Shortcut)
	}
	want := time.Date(2024, 3, 2, 11, 30, 0, 0, time.UTC)
	if !qa.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", qa.UpdatedAt, want)
	}
}

func TestQuickAnswerInput_OnlyCarriesEditableFields(t *testing.T) {
	data, err := json.Marshal(QuickAnswerInput{Shortcut: "hi", Message: "message/*/Hello there!"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := string(data)
	if got != `{"shortcut":"hi","message":"message/*/Hello there!"}` {
		t.Errorf("payload = %s", got)
	}
	if strings.Contains(got, "createdAt") {
		t.Error("payload must not carry timestamps")
	}
}

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err             error
		expectedMessage string
	}{
		{ErrNotFound, "quick answer not found"},
		{ErrMissingID, "quick answer id is required"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expectedMessage {
			t.Errorf("error message = %q, want %q", tt.err.Error(), tt.expectedMessage)
		}
	}
}
