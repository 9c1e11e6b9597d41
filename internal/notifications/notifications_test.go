package notifications

import (
	"bytes"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/quickanswers/internal/config/colors"
)

func TestState_AddAndClear(t *testing.T) {
	s := NewState(0)
	s.Add(Success, "Quick answer saved")
	s.Add(Error, "network down")

	if !s.HasAny() || len(s.All()) != 2 {
		t.Fatalf("All() = %v", s.All())
	}

	last, ok := s.Last()
	if !ok || last.Severity != Error || last.Message != "network down" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	s.ClearSeverity(Error)
	if len(s.All()) != 1 || s.All()[0].Severity != Success {
		t.Errorf("after ClearSeverity: %v", s.All())
	}

	s.ClearSeverity(Success)
	if s.HasAny() {
		t.Error("expected no notifications left")
	}
}

func TestState_LimitDropsOldest(t *testing.T) {
	s := NewState(2)
	s.Add(Info, "one")
	s.Add(Info, "two")
	s.Add(Info, "three")

	all := s.All()
	if len(all) != 2 || all[0].Message != "two" || all[1].Message != "three" {
		t.Errorf("All() = %v", all)
	}

	s.DismissOldest()
	if len(s.All()) != 1 || s.All()[0].Message != "three" {
		t.Errorf("after DismissOldest: %v", s.All())
	}
}

func TestState_GetLayersNeedsWindowSize(t *testing.T) {
	s := NewState(0)
	s.Add(Warning, "careful")
	render := func(n Notification) string { return n.Message }

	if layers := s.GetLayers(render); len(layers) != 0 {
		t.Errorf("expected no layers before window size is known, got %d", len(layers))
	}

	s.SetWindowSize(80, 24)
	if layers := s.GetLayers(render); len(layers) != 1 {
		t.Errorf("expected 1 layer, got %d", len(layers))
	}
}

func TestPalette_RenderContainsMessage(t *testing.T) {
	p := NewPalette(*colors.Default())

	for _, sev := range []Severity{Info, Success, Warning, Error} {
		out := p.Render(Notification{Severity: sev, Message: "hello"})
		if !strings.Contains(out, "hello") {
			t.Errorf("Render(%v) missing message: %q", sev, out)
		}
		if !strings.Contains(p.RenderInline(Notification{Severity: sev, Message: "hi"}), "hi") {
			t.Errorf("RenderInline(%v) missing message", sev)
		}
	}
}

func TestPalette_RenderWrapsLongMessages(t *testing.T) {
	p := NewPalette(*colors.Default())
	msg := strings.Repeat("shortcut taken ", 12)

	out := p.Render(Notification{Severity: Error, Message: msg})
	// border and padding add two columns on each side
	if w := lipgloss.Width(out); w > toastWidth+4 {
		t.Errorf("toast width = %d, want at most %d", w, toastWidth+4)
	}
	if strings.Count(out, "\n") < 3 {
		t.Errorf("expected the message to wrap over several lines:\n%s", out)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Add(Error, "boom")
	w.Add(Success, "saved")

	out := buf.String()
	if !strings.Contains(out, "❌ Error: boom") {
		t.Errorf("missing error line: %q", out)
	}
	if !strings.Contains(out, "✅ saved") {
		t.Errorf("missing success line: %q", out)
	}
}

func TestSeverityString(t *testing.T) {
	if Warning.String() != "warning" || Severity(99).String() != "info" {
		t.Error("unexpected severity names")
	}
}
