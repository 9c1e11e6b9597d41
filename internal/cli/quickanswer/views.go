package quickanswer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/quickanswers/internal/cli"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/packed"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

const previewWidth = 40

// recordView is a quick answer with its message unpacked
type recordView struct {
	ID        types.QuickAnswerID `json:"id,omitempty"`
	Shortcut  string              `json:"shortcut"`
	Message   string              `json:"message"`
	Messages  []packed.Entry      `json:"messages"`
	UpdatedAt time.Time           `json:"updatedAt,omitzero"`
}

func newRecordView(rec *models.QuickAnswer) (recordView, error) {
	entries, err := packed.Decode(rec.Message)
	if err != nil {
		return recordView{}, fmt.Errorf("quick answer %s: %w", rec.ID, err)
	}
	return recordView{
		ID:        rec.ID,
		Shortcut:  rec.Shortcut,
		Message:   rec.Message,
		Messages:  entries,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (r recordView) GetID() string { return r.ID.String() }

func (r recordView) Human() string {
	var b strings.Builder
	if !r.ID.IsZero() {
		fmt.Fprintf(&b, "ID:       %s\n", r.ID)
	}
	fmt.Fprintf(&b, "Shortcut: %s\n", r.Shortcut)
	if !r.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Updated:  %s\n", r.UpdatedAt.Local().Format(time.DateTime))
	}
	b.WriteString(entriesTable(r.Messages))
	return b.String()
}

func entriesTable(entries []packed.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Key, e.Value})
	}
	return cli.RenderTable([]string{"FIELD", "MESSAGE"}, rows, nil)
}

// listView is the list command output
type listView struct {
	Records []listRow `json:"records"`
}

type listRow struct {
	ID        types.QuickAnswerID `json:"id"`
	Shortcut  string              `json:"shortcut"`
	Messages  int                 `json:"messages"`
	Preview   string              `json:"preview"`
	UpdatedAt time.Time           `json:"updatedAt,omitzero"`
	Malformed bool                `json:"malformed,omitempty"`
}

func newListView(records []models.QuickAnswer) listView {
	view := listView{Records: make([]listRow, 0, len(records))}
	for _, rec := range records {
		row := listRow{ID: rec.ID, Shortcut: rec.Shortcut, UpdatedAt: rec.UpdatedAt}
		entries, err := packed.Decode(rec.Message)
		if err != nil {
			row.Malformed = true
			row.Preview = truncate(rec.Message, previewWidth)
		} else {
			row.Messages = len(entries)
			row.Preview = truncate(entries[0].Value, previewWidth)
		}
		view.Records = append(view.Records, row)
	}
	return view
}

func (l listView) Human() string {
	if len(l.Records) == 0 {
		return "No quick answers found"
	}
	rows := make([][]string, 0, len(l.Records))
	for _, r := range l.Records {
		count := strconv.Itoa(r.Messages)
		if r.Malformed {
			count = "?"
		}
		updated := ""
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Local().Format(time.DateOnly)
		}
		rows = append(rows, []string{r.ID.String(), r.Shortcut, count, r.Preview, updated})
	}
	return cli.RenderTable(
		[]string{"ID", "SHORTCUT", "MESSAGES", "PREVIEW", "UPDATED"},
		rows,
		[]cli.ColumnAlignment{cli.AlignRight, cli.AlignLeft, cli.AlignRight, cli.AlignLeft, cli.AlignLeft},
	)
}

// packedView is the pack command output
type packedView struct {
	Message string `json:"message"`
}

func (p packedView) Human() string { return p.Message }

// entriesView is the unpack command output
type entriesView struct {
	Messages []packed.Entry `json:"messages"`
}

func (e entriesView) Human() string { return entriesTable(e.Messages) }

// truncate shortens s to width runes on a single line
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
