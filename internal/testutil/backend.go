package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/thenoetrevino/quickanswers/internal/models"
	"github.com/thenoetrevino/quickanswers/internal/types"
)

// Backend is an in-memory /quickAnswers REST server. New ids count up from 101.
type Backend struct {
	mu      sync.Mutex
	records map[string]models.QuickAnswer
	bodies  []string
	nextID  int
}

// NewBackend returns a Backend seeded with records
func NewBackend(records ...models.QuickAnswer) *Backend {
	b := &Backend{records: map[string]models.QuickAnswer{}, nextID: 100}
	for _, r := range records {
		b.records[r.ID.String()] = r
	}
	return b
}

// Serve starts an httptest server for b that is closed when the test ends
func (b *Backend) Serve(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)
	return server
}

// Bodies returns the raw request bodies of every create and update, oldest first
func (b *Backend) Bodies() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.bodies...)
}

// Record returns the stored record for id
func (b *Backend) Record(id string) (models.QuickAnswer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.records[id]
	return rec, ok
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	id := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/quickAnswers"), "/")
	switch {
	case r.Method == http.MethodGet && id == "":
		list := make([]models.QuickAnswer, 0, len(b.records))
		for _, rec := range b.records {
			list = append(list, rec)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		_ = json.NewEncoder(w).Encode(list)

	case r.Method == http.MethodGet:
		rec, ok := b.records[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"QuickAnswer not found"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)

	case r.Method == http.MethodPost && id == "", r.Method == http.MethodPut && id != "":
		data, _ := io.ReadAll(r.Body)
		b.bodies = append(b.bodies, string(data))
		var in models.QuickAnswerInput
		if err := json.Unmarshal(data, &in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid body"}`)
			return
		}
		if id == "" {
			b.nextID++
			id = strconv.Itoa(b.nextID)
		} else if _, ok := b.records[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"QuickAnswer not found"}`)
			return
		}
		rec := models.QuickAnswer{ID: types.QuickAnswerID(id), Shortcut: in.Shortcut, Message: in.Message}
		b.records[id] = rec
		_ = json.NewEncoder(w).Encode(rec)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
