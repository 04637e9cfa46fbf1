package navbar

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

type MockPreferenceWriter struct {
	mock.Mock
}

func (m *MockPreferenceWriter) WriteCurrency(ctx context.Context, userID string, currency models.Currency) error {
	args := m.Called(ctx, userID, currency)
	return args.Error(0)
}

// countingStorage wraps MemoryStorage and counts writes.
type countingStorage struct {
	*MemoryStorage
	mu     sync.Mutex
	writes int
	fail   bool
}

func newCountingStorage() *countingStorage {
	return &countingStorage{MemoryStorage: NewMemoryStorage()}
}

func (s *countingStorage) SetItem(key, value string) error {
	s.mu.Lock()
	s.writes++
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return s.MemoryStorage.SetItem(key, value)
}

func (s *countingStorage) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type harness struct {
	store    *Store
	doc      *Document
	storage  *countingStorage
	recorder *Recorder
	effects  *Effects
}

func newHarness(opts Options, remote PreferenceWriter) *harness {
	h := &harness{
		store:    NewStore(opts),
		doc:      NewDocument(),
		storage:  newCountingStorage(),
		recorder: &Recorder{},
	}
	cfg := EffectsConfig{
		Storage: h.storage,
		Tracker: h.recorder,
		Theme:   h.doc,
	}
	if remote != nil {
		cfg.Remote = remote
	}
	h.effects = NewEffects(cfg)
	h.effects.Attach(h.store)
	return h
}

func premiumUser() *models.SessionUser {
	return &models.SessionUser{
		ID:                "8d3f0c52-2d6a-4c55-9d2b-0a4c8e7f1b21",
		Name:              "Ada Lovelace",
		Email:             "ada@example.com",
		IsPremium:         true,
		PreferredCurrency: models.CurrencyGBP,
	}
}
