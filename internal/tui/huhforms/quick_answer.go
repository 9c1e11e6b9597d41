// Package huhforms builds the huh forms used by the dialog.
package huhforms

import (
	"fmt"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/validation"
)

// MessageField binds one message entry of the draft to a text area.
type MessageField struct {
	Key   string
	Value *string
}

// CreateQuickAnswerForm creates the form for adding or editing a quick answer:
// a shortcut input followed by one text area per message field, in order.
// Values are updated in place through the given pointers.
func CreateQuickAnswerForm(
	shortcut *string,
	messages []MessageField,
	isEdit bool,
	messageLines int,
) *huh.Form {
	title := "New Quick Answer"
	if isEdit {
		title = "Edit Quick Answer"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key(validation.ShortcutField).
			Title(title).
			Description("Shortcut").
			Placeholder("e.g. hi").
			Validate(validation.Shortcut).
			Value(shortcut),
	}

	for i, m := range messages {
		validate := validation.SecondaryMessage
		if m.Key == packed.PrimaryKey {
			validate = validation.Message
		}

		fields = append(fields,
			huh.NewText().
				Key(m.Key).
				Title(messageTitle(i)).
				Placeholder("Type the message...").
				CharLimit(validation.MessageMax).
				Lines(messageLines).
				Validate(validate).
				Value(m.Value),
		)
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(false)
}

func messageTitle(i int) string {
	if i == 0 {
		return "Message"
	}
	return fmt.Sprintf("Message %d", i+1)
}
