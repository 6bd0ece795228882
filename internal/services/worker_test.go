package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"alfredoptarigan/prepio/internal/models"
)

type fakeGenerationRepo struct {
	mu      sync.Mutex
	created []*models.GenerationRecord
	failIDs map[uuid.UUID]bool
	block   chan struct{}
}

func (f *fakeGenerationRepo) Create(record *models.GenerationRecord) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[record.ID] {
		return errors.New("insert failed")
	}
	f.created = append(f.created, record)
	return nil
}

func (f *fakeGenerationRepo) FindByID(id uuid.UUID) (*models.GenerationRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGenerationRepo) FindRecent(limit int) ([]models.GenerationRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGenerationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func TestRecordWorker_DrainsOnStop(t *testing.T) {
	repo := &fakeGenerationRepo{}
	worker := NewRecordWorker(repo, 2, 10)
	worker.Start()

	for i := 0; i < 5; i++ {
		worker.Record(&models.GenerationRecord{ID: uuid.New(), Kind: "questions"})
	}
	worker.Stop()

	assert.Equal(t, 5, repo.count())
}

func TestRecordWorker_ContinuesAfterCreateFailure(t *testing.T) {
	bad := uuid.New()
	repo := &fakeGenerationRepo{failIDs: map[uuid.UUID]bool{bad: true}}
	worker := NewRecordWorker(repo, 1, 10)
	worker.Start()

	worker.Record(&models.GenerationRecord{ID: bad})
	worker.Record(&models.GenerationRecord{ID: uuid.New()})
	worker.Stop()

	assert.Equal(t, 1, repo.count())
}

func TestRecordWorker_DropsWhenQueueFull(t *testing.T) {
	repo := &fakeGenerationRepo{block: make(chan struct{})}
	worker := NewRecordWorker(repo, 1, 1)

	// Not started: the single slot fills and the rest are dropped.
	for i := 0; i < 3; i++ {
		worker.Record(&models.GenerationRecord{ID: uuid.New()})
	}

	close(repo.block)
	worker.Start()
	worker.Stop()

	assert.Equal(t, 1, repo.count())
}

func TestRecordWorker_RecordAfterStop(t *testing.T) {
	repo := &fakeGenerationRepo{}
	worker := NewRecordWorker(repo, 1, 10)
	worker.Start()
	worker.Stop()

	assert.NotPanics(t, func() {
		worker.Record(&models.GenerationRecord{ID: uuid.New()})
	})
	assert.NotPanics(t, worker.Stop)
	assert.Zero(t, repo.count())
}
