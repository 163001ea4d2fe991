package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/prism/internal/batch"
	"github.com/JaimeStill/prism/internal/catalog"
	"github.com/JaimeStill/prism/internal/predictions"
	"github.com/JaimeStill/prism/internal/verify"
)

// fakeVerifier returns a MATCH record for every product unless the key is
// listed in fail. It tracks peak concurrency across Verify calls.
type fakeVerifier struct {
	fail map[uuid.UUID]error

	mu      sync.Mutex
	active  int
	peak    int
	started chan struct{}
	block   chan struct{}
}

func (v *fakeVerifier) Verify(_ context.Context, batchKey, productKey uuid.UUID) (*predictions.PredictionRecord, error) {
	v.mu.Lock()
	v.active++
	if v.active > v.peak {
		v.peak = v.active
	}
	v.mu.Unlock()

	if v.started != nil {
		v.started <- struct{}{}
	}
	if v.block != nil {
		<-v.block
	}

	v.mu.Lock()
	v.active--
	v.mu.Unlock()

	if err, ok := v.fail[productKey]; ok {
		return nil, err
	}

	justification := "colours align"
	return &predictions.PredictionRecord{
		BatchKey:            batchKey,
		ProductKey:          productKey,
		ColourStatus:        verify.StatusMatch,
		ColourJustification: &justification,
	}, nil
}

// fakeStore records upserts and serves a scripted unprocessed set.
type fakeStore struct {
	mu          sync.Mutex
	upserts     []predictions.PredictionRecord
	unprocessed []uuid.UUID
	upsertErr   error
}

func (s *fakeStore) Upsert(_ context.Context, record predictions.PredictionRecord) (*predictions.PredictionRecord, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}

	s.mu.Lock()
	s.upserts = append(s.upserts, record)
	s.mu.Unlock()

	return &record, nil
}

func (s *fakeStore) Unprocessed(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return s.unprocessed, nil
}

type keyCatalog struct {
	keys []uuid.UUID
}

func (c *keyCatalog) ProductKeys(context.Context) ([]uuid.UUID, error) { return c.keys, nil }

func (c *keyCatalog) SampleKeys(ctx context.Context, _ int) ([]uuid.UUID, error) {
	return c.keys, nil
}

func (c *keyCatalog) SampleKeysByAttribute(ctx context.Context, _, _ string, _ int) ([]uuid.UUID, error) {
	return c.keys, nil
}

func (c *keyCatalog) Product(context.Context, uuid.UUID) (*catalog.Product, error) {
	return nil, catalog.ErrNotFound
}

func (c *keyCatalog) DetailByURL(context.Context, string) (*catalog.ProductDetail, error) {
	return nil, catalog.ErrNotFound
}

func (c *keyCatalog) AttributeValues(context.Context, uuid.UUID) ([]catalog.AttributeValue, error) {
	return nil, nil
}

func (c *keyCatalog) Attribute(context.Context, uuid.UUID) (*catalog.Attribute, error) {
	return nil, catalog.ErrNotFound
}

func (c *keyCatalog) ImagePath(context.Context, string) (string, error) {
	return "", catalog.ErrNotFound
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newKeys(n int) []uuid.UUID {
	keys := make([]uuid.UUID, n)
	for i := range keys {
		keys[i] = uuid.New()
	}
	return keys
}

func TestRun(t *testing.T) {
	t.Run("outcomes preserve input order", func(t *testing.T) {
		keys := newKeys(7)
		store := &fakeStore{}
		o := batch.NewOrchestrator(&fakeVerifier{}, store, &keyCatalog{}, 3, testLogger())

		result, err := o.Run(context.Background(), uuid.New(), keys)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if result.Total != 7 || result.Stored != 7 || result.Failed != 0 {
			t.Errorf("result = %d/%d/%d, want 7/7/0", result.Total, result.Stored, result.Failed)
		}
		for i, outcome := range result.Outcomes {
			if outcome.ProductKey != keys[i] {
				t.Errorf("Outcomes[%d].ProductKey = %s, want %s", i, outcome.ProductKey, keys[i])
			}
			if outcome.Record == nil {
				t.Errorf("Outcomes[%d].Record = nil", i)
			}
		}
		if len(store.upserts) != 7 {
			t.Errorf("upserts = %d, want 7", len(store.upserts))
		}
	})

	t.Run("chunk size caps concurrency", func(t *testing.T) {
		const chunkSize = 2

		verifier := &fakeVerifier{
			started: make(chan struct{}, chunkSize),
			block:   make(chan struct{}),
		}
		o := batch.NewOrchestrator(verifier, &fakeStore{}, &keyCatalog{}, chunkSize, testLogger())

		done := make(chan *batch.Result)
		go func() {
			result, _ := o.Run(context.Background(), uuid.New(), newKeys(6))
			done <- result
		}()

		// The first chunk's workers are all in flight before any is released.
		<-verifier.started
		<-verifier.started
		close(verifier.block)
		for range 4 {
			<-verifier.started
		}
		result := <-done

		if verifier.peak > chunkSize {
			t.Errorf("peak concurrency = %d, want <= %d", verifier.peak, chunkSize)
		}
		if result.Stored != 6 {
			t.Errorf("Stored = %d, want 6", result.Stored)
		}
	})

	t.Run("failures are isolated and not persisted", func(t *testing.T) {
		keys := newKeys(3)
		verifier := &fakeVerifier{fail: map[uuid.UUID]error{
			keys[1]: errors.New("retries exhausted after 5 attempts: rate limited"),
		}}
		store := &fakeStore{}
		o := batch.NewOrchestrator(verifier, store, &keyCatalog{}, 3, testLogger())

		result, err := o.Run(context.Background(), uuid.New(), keys)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if result.Stored != 2 || result.Failed != 1 {
			t.Errorf("stored/failed = %d/%d, want 2/1", result.Stored, result.Failed)
		}
		if result.Outcomes[1].Error == nil {
			t.Fatal("Outcomes[1].Error = nil, want failure message")
		}
		if result.Outcomes[1].Record != nil {
			t.Error("failed product carries a record")
		}
		for _, stored := range store.upserts {
			if stored.ProductKey == keys[1] {
				t.Error("failed product was persisted")
			}
		}
	})

	t.Run("store failure counts as product failure", func(t *testing.T) {
		store := &fakeStore{upsertErr: errors.New("connection reset")}
		o := batch.NewOrchestrator(&fakeVerifier{}, store, &keyCatalog{}, 2, testLogger())

		result, err := o.Run(context.Background(), uuid.New(), newKeys(2))
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if result.Failed != 2 || result.Stored != 0 {
			t.Errorf("stored/failed = %d/%d, want 0/2", result.Stored, result.Failed)
		}
	})

	t.Run("nil batch key selects the full catalog", func(t *testing.T) {
		keys := newKeys(4)
		store := &fakeStore{}
		o := batch.NewOrchestrator(&fakeVerifier{}, store, &keyCatalog{keys: keys}, 2, testLogger())

		result, err := o.Run(context.Background(), uuid.Nil, nil)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if result.BatchKey == uuid.Nil {
			t.Error("BatchKey = Nil, want generated key")
		}
		if result.Total != 4 {
			t.Errorf("Total = %d, want 4", result.Total)
		}
	})

	t.Run("existing batch resumes over unprocessed products", func(t *testing.T) {
		batchKey := uuid.New()
		remainder := newKeys(2)
		store := &fakeStore{unprocessed: remainder}
		o := batch.NewOrchestrator(&fakeVerifier{}, store, &keyCatalog{keys: newKeys(10)}, 2, testLogger())

		result, err := o.Run(context.Background(), batchKey, nil)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}

		if result.BatchKey != batchKey {
			t.Errorf("BatchKey = %s, want %s", result.BatchKey, batchKey)
		}
		if result.Total != 2 {
			t.Errorf("Total = %d, want 2", result.Total)
		}
	})

	t.Run("explicit keys bypass selection", func(t *testing.T) {
		keys := newKeys(1)
		o := batch.NewOrchestrator(&fakeVerifier{}, &fakeStore{}, &keyCatalog{keys: newKeys(10)}, 2, testLogger())

		result, err := o.Run(context.Background(), uuid.Nil, keys)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("Total = %d, want 1", result.Total)
		}
	})

	t.Run("cancelled context stops between chunks", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		o := batch.NewOrchestrator(&fakeVerifier{}, &fakeStore{}, &keyCatalog{}, 2, testLogger())
		if _, err := o.Run(ctx, uuid.New(), newKeys(4)); !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v, want context.Canceled", err)
		}
	})
}
