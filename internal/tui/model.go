// Package tui hosts the quick answer editor in a Bubble Tea program.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/quickanswers/internal/config"
	"github.com/thenoetrevino/quickanswers/internal/editor"
	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/notifications"
	"github.com/thenoetrevino/quickanswers/internal/tui/huhforms"
)

const (
	defaultToastTTL = 4 * time.Second
	maxToasts       = 3
	maxDialogWidth  = 80
	messageLines    = 4
)

// Outcome says how the dialog ended.
type Outcome int

const (
	Pending Outcome = iota
	Saved
	Cancelled
)

type keyMap struct {
	AddField    key.Binding
	RemoveField key.Binding
	Save        key.Binding
	Cancel      key.Binding
	Quit        key.Binding
}

func newKeyMap(k config.KeyMappings) keyMap {
	return keyMap{
		AddField:    key.NewBinding(key.WithKeys(k.AddField), key.WithHelp(k.AddField, "add message")),
		RemoveField: key.NewBinding(key.WithKeys(k.RemoveField), key.WithHelp(k.RemoveField, "remove message")),
		Save:        key.NewBinding(key.WithKeys(k.SaveForm), key.WithHelp(k.SaveForm, "save")),
		Cancel:      key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		Quit:        key.NewBinding(key.WithKeys(k.Quit), key.WithHelp(k.Quit, "quit")),
	}
}

// toastNotifier feeds the toast queue and counts additions so the model can
// schedule their dismissal.
type toastNotifier struct {
	state *notifications.State
	added int
}

func (n *toastNotifier) Add(severity notifications.Severity, message string) {
	n.state.Add(severity, message)
	n.added++
}

// Model is the dialog program.
type Model struct {
	ctx    context.Context
	cfg    *config.Config
	editor *editor.Editor
	opts   editor.Options
	keys   keyMap

	toasts   *toastNotifier
	palette  notifications.Palette
	toastTTL time.Duration

	form     *huh.Form
	shortcut string
	messages []huhforms.MessageField
	spinner  spinner.Model

	width  int
	height int

	outcome Outcome
	saved   *models.QuickAnswer
}

// New creates the dialog. The editor session starts in Init.
func New(ctx context.Context, store editor.Store, opts editor.Options, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	toasts := &toastNotifier{state: notifications.NewState(maxToasts)}
	m := &Model{
		ctx:      ctx,
		cfg:      cfg,
		keys:     newKeyMap(cfg.KeyMappings),
		toasts:   toasts,
		palette:  notifications.NewPalette(cfg.ColorScheme),
		toastTTL: defaultToastTTL,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ColorScheme.Accent))),
		),
	}

	onSave := opts.OnSave
	opts.OnSave = func(rec *models.QuickAnswer) {
		m.saved = rec
		if onSave != nil {
			onSave(rec)
		}
	}
	m.opts = opts
	m.editor = editor.New(store, toasts)
	return m
}

// Init opens the editor session and, in edit mode, starts loading the record.
func (m *Model) Init() tea.Cmd {
	m.editor.Open(m.ctx, m.opts)

	cmds := []tea.Cmd{m.rebuildForm()}
	if m.editor.Phase() == editor.Loading {
		cmds = append(cmds, m.fetchCmd(), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Editor exposes the underlying editor.
func (m *Model) Editor() *editor.Editor { return m.editor }

// Notifications returns the toast queue.
func (m *Model) Notifications() *notifications.State { return m.toasts.state }

// Result reports how the dialog ended and, for a create, the new record.
func (m *Model) Result() (Outcome, *models.QuickAnswer) {
	return m.outcome, m.saved
}

// rebuildForm recreates the form from the editor draft. It runs after every
// change to the set of message fields so the form never shows stale fields.
func (m *Model) rebuildForm() tea.Cmd {
	d := m.editor.Draft()
	m.shortcut = d.Shortcut

	m.messages = m.messages[:0]
	for _, e := range d.Entries() {
		value := e.Value
		m.messages = append(m.messages, huhforms.MessageField{Key: e.Key, Value: &value})
	}

	m.form = huhforms.CreateQuickAnswerForm(&m.shortcut, m.messages, m.editor.EditMode(), messageLines).
		WithKeyMap(huhforms.NewKeyMap(m.cfg.KeyMappings.NewLine)).
		WithTheme(huhforms.NewTheme(m.cfg.ColorScheme))
	if m.width > 0 {
		m.form = m.form.WithWidth(m.formWidth())
	}
	return m.form.Init()
}

// syncFromForm copies the bound form values into the editor draft.
func (m *Model) syncFromForm() {
	m.editor.SetShortcut(m.shortcut)
	for _, f := range m.messages {
		m.editor.SetMessage(f.Key, *f.Value)
	}
}

// focusedKey returns the key of the focused form field.
func (m *Model) focusedKey() string {
	if m.form == nil {
		return ""
	}
	field := m.form.GetFocusedField()
	if field == nil {
		return ""
	}
	return field.GetKey()
}

func (m *Model) formWidth() int {
	return max(m.dialogWidth()-4, 10)
}
