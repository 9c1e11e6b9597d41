// Package draft holds the editable, in-memory form of a quick answer.
//
// The message fields live in one ordered list of key/value entries, so the
// fields a dialog renders and the values it submits can never disagree.
package draft

import (
	"strconv"
	"strings"

	"github.com/thenoetrevino/quickanswers/internal/packed"
)

// Draft is the transient state of one editing session.
type Draft struct {
	Shortcut string

	entries []packed.Entry
	// next is the numeric suffix handed to the next appended field.
	// It only grows within a session, so removed keys are never reused.
	next int
}

// New returns a draft with a single empty primary message field.
func New() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

// FromEntries builds a draft from decoded entries.
func FromEntries(shortcut string, entries []packed.Entry) *Draft {
	d := &Draft{Shortcut: shortcut}
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}
	return d
}

// FromMessages builds a draft whose fields hold messages in order, keyed
// message, message1, message2, ...
func FromMessages(shortcut string, messages []string) *Draft {
	d := New()
	d.Shortcut = shortcut
	for i, m := range messages {
		key := packed.PrimaryKey
		if i > 0 {
			key = d.Append()
		}
		d.Set(key, m)
	}
	return d
}

// Reset drops every field except an empty primary one and starts a new key sequence.
func (d *Draft) Reset() {
	d.entries = []packed.Entry{{Key: packed.PrimaryKey}}
	d.next = 1
}

// Clear empties the draft completely, including the shortcut.
func (d *Draft) Clear() {
	d.Shortcut = ""
	d.Reset()
}

// Len returns the number of message fields.
func (d *Draft) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the message fields in order.
func (d *Draft) Entries() []packed.Entry {
	out := make([]packed.Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Keys returns the message field keys in order.
func (d *Draft) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// Value returns the value of key.
func (d *Draft) Value(key string) (string, bool) {
	if i := d.index(key); i >= 0 {
		return d.entries[i].Value, true
	}
	return "", false
}

// Set updates key in place, or appends it when it does not exist yet.
// Keys outside the message-field pattern are ignored.
func (d *Draft) Set(key, value string) {
	if !packed.IsMessageKey(key) {
		return
	}
	if i := d.index(key); i >= 0 {
		d.entries[i].Value = value
		return
	}
	d.entries = append(d.entries, packed.Entry{Key: key, Value: value})
	if n, ok := suffix(key); ok && n >= d.next {
		d.next = n + 1
	}
}

// Append adds an empty field with the next unused key and returns that key.
func (d *Draft) Append() string {
	key := keyFor(d.next)
	for d.index(key) >= 0 {
		d.next++
		key = keyFor(d.next)
	}
	d.next++
	d.entries = append(d.entries, packed.Entry{Key: key})
	return key
}

// Remove deletes key and reports whether it existed. Remaining keys keep their names.
func (d *Draft) Remove(key string) bool {
	i := d.index(key)
	if i < 0 {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	return true
}

// HasContent reports whether at least one message field holds non-blank text.
func (d *Draft) HasContent() bool {
	for _, e := range d.entries {
		if strings.TrimSpace(e.Value) != "" {
			return true
		}
	}
	return false
}

// Merge overlays other onto d: a non-empty shortcut and every message field of
// other replace the matching values of d. Fields only d has are kept.
func (d *Draft) Merge(other *Draft) {
	if other == nil {
		return
	}
	if other.Shortcut != "" {
		d.Shortcut = other.Shortcut
	}
	for _, e := range other.entries {
		d.Set(e.Key, e.Value)
	}
	if other.next > d.next {
		d.next = other.next
	}
}

// Clone returns an independent copy.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	return &Draft{
		Shortcut: d.Shortcut,
		entries:  d.Entries(),
		next:     d.next,
	}
}

func (d *Draft) index(key string) int {
	for i, e := range d.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func keyFor(n int) string {
	if n == 0 {
		return packed.PrimaryKey
	}
	return packed.PrimaryKey + strconv.Itoa(n)
}

// suffix returns the numeric suffix of a message key; the primary key is 0.
func suffix(key string) (int, bool) {
	if key == packed.PrimaryKey {
		return 0, true
	}
	rest, ok := strings.CutPrefix(key, packed.PrimaryKey)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
