// Package packed encodes several named message bodies into the single text
// column the backend stores for a quick answer, and decodes them back.
//
// The wire form is
//
//	<key0>/:/<key1>/:/.../*/<value0>/:/<value1>/:/...
//
// Keys and values are positional: key i names value i. The format has no
// escaping, so Encode refuses keys or values containing either delimiter and
// values that would form one where they meet a separator.
package packed

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// ItemSeparator separates keys from each other and values from each other.
	ItemSeparator = "/:/"
	// HalfSeparator separates the key list from the value list.
	HalfSeparator = "/*/"

	// PrimaryKey is the key of the first, validated message body.
	PrimaryKey = "message"
)

var (
	ErrNoEntries         = errors.New("packed: at least one message is required")
	ErrReservedDelimiter = errors.New("packed: text contains a reserved delimiter")
	ErrInvalidKey        = errors.New("packed: key is not a message field")
	ErrMalformed         = errors.New("packed: malformed message string")
)

// Entry is one named message body.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// IsMessageKey reports whether key follows the message-field naming pattern
// (message, message1, message2, ...).
func IsMessageKey(key string) bool {
	return strings.Contains(key, PrimaryKey)
}

// ContainsDelimiter reports whether s would corrupt a packed string.
func ContainsDelimiter(s string) bool {
	return strings.Contains(s, ItemSeparator) || strings.Contains(s, HalfSeparator)
}

// Collisions returns, in entry order, the keys whose values would not come
// back unchanged once packed next to their neighbours. That covers values
// containing a delimiter outright and values whose edges join a separator
// into an earlier match, like a non-last value ending in "/:".
func Collisions(entries []Entry) []string {
	var keys []string
	for i, e := range entries {
		if !survivesAt(e.Value, i, len(entries)) {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// survivesAt reports whether value decodes back intact as value i of n.
// Decode splits the halves on the leftmost HalfSeparator, then each half on
// the leftmost ItemSeparator, so only the characters touching value matter.
func survivesAt(value string, i, n int) bool {
	if ContainsDelimiter(value) {
		return false
	}

	next := ""
	if i < n-1 {
		next = ItemSeparator
	}
	// The separator in front of every value but the first ends in "/".
	window := value + next
	if i > 0 {
		window = "/" + window
	}
	if strings.Contains(window, HalfSeparator) {
		return false
	}
	return next == "" || strings.Index(value+next, ItemSeparator) == len(value)
}

// Encode packs entries in order. It fails instead of producing a string
// that would decode to anything but entries.
func Encode(entries []Entry) (string, error) {
	if len(entries) == 0 {
		return "", ErrNoEntries
	}

	keys := make([]string, 0, len(entries))
	values := make([]string, 0, len(entries))
	for i, e := range entries {
		if !IsMessageKey(e.Key) {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, e.Key)
		}
		if ContainsDelimiter(e.Key) {
			return "", fmt.Errorf("%w in key %q", ErrReservedDelimiter, e.Key)
		}
		if slices.Contains(keys, e.Key) {
			return "", fmt.Errorf("%w: duplicate key %q", ErrInvalidKey, e.Key)
		}
		if !survivesAt(e.Value, i, len(entries)) {
			return "", fmt.Errorf("%w in %s", ErrReservedDelimiter, e.Key)
		}
		keys = append(keys, e.Key)
		values = append(values, e.Value)
	}

	s := strings.Join(keys, ItemSeparator) + HalfSeparator + strings.Join(values, ItemSeparator)
	decoded, err := Decode(s)
	if err != nil || !slices.Equal(decoded, entries) {
		return "", fmt.Errorf("%w: packed form does not decode back to the input", ErrReservedDelimiter)
	}
	return s, nil
}

// Decode unpacks s into its entries, preserving order.
//
// A string containing neither delimiter is treated as a single primary body;
// records written before multi-message support look like that.
func Decode(s string) ([]Entry, error) {
	if !ContainsDelimiter(s) {
		return []Entry{{Key: PrimaryKey, Value: s}}, nil
	}

	halves := strings.Split(s, HalfSeparator)
	if len(halves) != 2 {
		return nil, fmt.Errorf("%w: expected one %q, found %d", ErrMalformed, HalfSeparator, len(halves)-1)
	}

	keys := strings.Split(halves[0], ItemSeparator)
	values := strings.Split(halves[1], ItemSeparator)
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys for %d values", ErrMalformed, len(keys), len(values))
	}

	seen := make(map[string]struct{}, len(keys))
	entries := make([]Entry, 0, len(keys))
	for i, key := range keys {
		if !IsMessageKey(key) {
			return nil, fmt.Errorf("%w: unexpected key %q", ErrMalformed, key)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrMalformed, key)
		}
		seen[key] = struct{}{}
		entries = append(entries, Entry{Key: key, Value: values[i]})
	}

	return entries, nil
}
