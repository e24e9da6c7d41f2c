package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusops/user-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubAccountRepo struct {
	accounts  map[string]*domain.Account
	createErr error
	updateErr error
	deleteErr error
	deleted   []string
}

func newStubAccountRepo(seed ...*domain.Account) *stubAccountRepo {
	r := &stubAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, a := range seed {
		clone := *a
		r.accounts[a.ID] = &clone
	}
	return r
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *a
	if clone.ID == "" {
		clone.ID = "generated-" + a.Name
	}
	for _, existing := range r.accounts {
		if existing.Name == clone.Name {
			return nil, domain.ErrAccountExists
		}
	}
	r.accounts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, changes domain.AccountChanges) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	changes.Apply(a)
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// stubDependentStore keeps dependent collections as slices of documents and
// mirrors the equality filters of the Mongo adapter.
type stubDependentStore struct {
	collections map[string][]domain.Document
	findErr     map[string]error
	writeErr    map[string]error
	calls       []string // "<op>:<collection>" in call order
}

func newStubDependentStore() *stubDependentStore {
	return &stubDependentStore{
		collections: make(map[string][]domain.Document),
		findErr:     make(map[string]error),
		writeErr:    make(map[string]error),
	}
}

func (s *stubDependentStore) add(collection string, doc domain.Document) {
	s.collections[collection] = append(s.collections[collection], doc)
}

func (s *stubDependentStore) FindFirst(_ context.Context, collection, field, value string) (domain.Document, bool, error) {
	s.calls = append(s.calls, "find:"+collection)
	if err := s.findErr[collection]; err != nil {
		return nil, false, err
	}
	for _, doc := range s.collections[collection] {
		if doc[field] == value {
			return doc, true, nil
		}
	}
	return nil, false, nil
}

func (s *stubDependentStore) Unset(_ context.Context, collection, field, value string) (int64, error) {
	s.calls = append(s.calls, "unset:"+collection)
	if err := s.writeErr[collection]; err != nil {
		return 0, err
	}
	var n int64
	for _, doc := range s.collections[collection] {
		if doc[field] == value {
			doc[field] = nil
			n++
		}
	}
	return n, nil
}

func (s *stubDependentStore) DeleteAll(_ context.Context, collection, field, value string) (int64, error) {
	s.calls = append(s.calls, "delete:"+collection)
	if err := s.writeErr[collection]; err != nil {
		return 0, err
	}
	kept := s.collections[collection][:0]
	var n int64
	for _, doc := range s.collections[collection] {
		if doc[field] == value {
			n++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept
	return n, nil
}

func (s *stubDependentStore) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range s.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

type stubHasher struct {
	err   error
	calls int
}

func (h *stubHasher) Hash(plaintext string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

// stubLock maps account id to the token of its current holder.
type stubLock struct {
	held       map[string]string
	acquireErr error
	released   []string
}

func newStubLock() *stubLock { return &stubLock{held: make(map[string]string)} }

func (l *stubLock) Acquire(_ context.Context, id string) (string, bool, error) {
	if l.acquireErr != nil {
		return "", false, l.acquireErr
	}
	if _, ok := l.held[id]; ok {
		return "", false, nil
	}
	token := "token-" + id
	l.held[id] = token
	return token, true, nil
}

func (l *stubLock) Release(_ context.Context, id, token string) error {
	if l.held[id] == token {
		delete(l.held, id)
		l.released = append(l.released, id)
	}
	return nil
}

type recordingPublisher struct {
	events []domain.AuditEvent
}

func (p *recordingPublisher) Publish(e domain.AuditEvent) {
	p.events = append(p.events, e)
}

var errBoom = errors.New("boom")

// recordingMetrics keeps the counters the services emit, keyed for easy assertions.
type recordingMetrics struct {
	operations []string
	scanFailed []string
	remediated map[string]int64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{remediated: make(map[string]int64)}
}

func (m *recordingMetrics) AccountOperation(operation, result string) {
	m.operations = append(m.operations, operation+"/"+result)
}

func (m *recordingMetrics) ReferenceScanFailed(collection string) {
	m.scanFailed = append(m.scanFailed, collection)
}

func (m *recordingMetrics) ReferencesRemediated(collection, action string, n int64) {
	m.remediated[collection+"/"+action] += n
}

type nopMetrics struct{}

func (nopMetrics) AccountOperation(string, string)            {}
func (nopMetrics) ReferenceScanFailed(string)                 {}
func (nopMetrics) ReferencesRemediated(string, string, int64) {}

var noMetrics nopMetrics
