// Package testutil provides test doubles for the Supabase backend.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	supa "github.com/supabase-community/supabase-go"
)

// Row is one stored record, keyed by column name.
type Row = map[string]interface{}

// FakeStore emulates the PostgREST wire surface for the operations the
// services issue: filtered/ordered selects, inserts, full-row updates and
// deletes, all under /rest/v1/<table>. It exists so tests exercise the real
// supabase-go client stack end to end.
type FakeStore struct {
	Server *httptest.Server

	mu       sync.Mutex
	tables   map[string][]Row
	requests []string
	failNext bool
}

// NewFakeStore starts a fake store and returns it together with a Supabase
// client pointed at it. Both are torn down with the test.
func NewFakeStore(t *testing.T) (*FakeStore, *supa.Client) {
	t.Helper()

	store := &FakeStore{tables: map[string][]Row{}}
	store.Server = httptest.NewServer(http.HandlerFunc(store.handle))
	t.Cleanup(store.Server.Close)

	client, err := supa.NewClient(store.Server.URL, "test-anon-key", nil)
	if err != nil {
		t.Fatalf("failed to build supabase client against fake store: %v", err)
	}
	return store, client
}

// Seed inserts rows directly, bypassing the HTTP surface.
func (s *FakeStore) Seed(table string, rows ...Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rows...)
}

// Rows returns a copy of a table's contents.
func (s *FakeStore) Rows(table string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.tables[table]))
	copy(out, s.tables[table])
	return out
}

// RequestCount reports how many HTTP calls the store has received.
func (s *FakeStore) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// RequestLog returns the "<METHOD> <path>" log of received calls.
func (s *FakeStore) RequestLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// FailNext makes the next call answer with a 500, simulating a store
// outage or policy rejection.
func (s *FakeStore) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

func (s *FakeStore) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.Path)

	if s.failNext {
		s.failNext = false
		http.Error(w, `{"message":"simulated store failure"}`, http.StatusInternalServerError)
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	if table == r.URL.Path || table == "" {
		http.Error(w, `{"message":"unknown path"}`, http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleSelect(w, r, table)
	case http.MethodPost:
		s.handleInsert(w, r, table)
	case http.MethodPatch:
		s.handleUpdate(w, r, table)
	case http.MethodDelete:
		s.handleDelete(w, r, table)
	default:
		http.Error(w, `{"message":"unsupported method"}`, http.StatusMethodNotAllowed)
	}
}

func (s *FakeStore) handleSelect(w http.ResponseWriter, r *http.Request, table string) {
	rows := filterRows(s.tables[table], r)

	if order := r.URL.Query().Get("order"); order != "" {
		column, descending := parseOrder(order)
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := fmt.Sprint(rows[i][column]), fmt.Sprint(rows[j][column])
			if descending {
				return a > b
			}
			return a < b
		})
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *FakeStore) handleInsert(w http.ResponseWriter, r *http.Request, table string) {
	inserted, err := decodeRows(r)
	if err != nil {
		http.Error(w, `{"message":"invalid body"}`, http.StatusBadRequest)
		return
	}

	s.tables[table] = append(s.tables[table], inserted...)

	if wantsRepresentation(r) {
		writeJSON(w, http.StatusCreated, inserted)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *FakeStore) handleUpdate(w http.ResponseWriter, r *http.Request, table string) {
	var patch Row
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, `{"message":"invalid body"}`, http.StatusBadRequest)
		return
	}

	var updated []Row
	for _, row := range s.tables[table] {
		if matchesFilters(row, r) {
			for column, value := range patch {
				row[column] = value
			}
			updated = append(updated, row)
		}
	}

	if wantsRepresentation(r) {
		if updated == nil {
			updated = []Row{}
		}
		writeJSON(w, http.StatusOK, updated)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *FakeStore) handleDelete(w http.ResponseWriter, r *http.Request, table string) {
	var kept []Row
	for _, row := range s.tables[table] {
		if !matchesFilters(row, r) {
			kept = append(kept, row)
		}
	}
	s.tables[table] = kept
	writeJSON(w, http.StatusOK, []Row{})
}

func decodeRows(r *http.Request) ([]Row, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var rows []Row
		err := json.Unmarshal(raw, &rows)
		return rows, err
	}

	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return []Row{row}, nil
}

func filterRows(rows []Row, r *http.Request) []Row {
	var out []Row
	for _, row := range rows {
		if matchesFilters(row, r) {
			out = append(out, row)
		}
	}
	if out == nil {
		out = []Row{}
	}
	return out
}

func matchesFilters(row Row, r *http.Request) bool {
	for column, values := range r.URL.Query() {
		switch column {
		case "select", "order", "limit", "offset":
			continue
		}
		for _, value := range values {
			want, ok := strings.CutPrefix(value, "eq.")
			if !ok {
				continue
			}
			if fmt.Sprint(row[column]) != want {
				return false
			}
		}
	}
	return true
}

// parseOrder handles the "column.desc.nullslast" shape postgrest-go emits.
func parseOrder(order string) (column string, descending bool) {
	first := strings.Split(order, ",")[0]
	parts := strings.Split(first, ".")
	column = parts[0]
	descending = len(parts) > 1 && parts[1] == "desc"
	return column, descending
}

func wantsRepresentation(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Prefer"), "return=representation")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
