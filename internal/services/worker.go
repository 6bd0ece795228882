package services

import (
	"sync"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/repositories"
)

// RecordWorker persists generation records in the background.
type RecordWorker interface {
	Recorder
	Start()
	Stop()
}

type recordWorker struct {
	repo        repositories.GenerationRepository
	queue       chan *models.GenerationRecord
	concurrency int
	wg          sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewRecordWorker(repo repositories.GenerationRepository, concurrency, queueSize int) RecordWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &recordWorker{
		repo:        repo,
		queue:       make(chan *models.GenerationRecord, queueSize),
		concurrency: concurrency,
	}
}

// Start implements RecordWorker.
func (w *recordWorker) Start() {
	log.Info().Int("concurrency", w.concurrency).Msg("🚀 Starting generation record worker")

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processRecords(i + 1)
	}
}

// Stop closes the queue and waits until every queued record is written.
func (w *recordWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()

	log.Info().Msg("🛑 Stopping generation record worker...")
	w.wg.Wait()
	log.Info().Msg("✅ Generation record worker stopped")
}

// Record enqueues without blocking. A full queue or a stopped worker drops
// the record.
func (w *recordWorker) Record(record *models.GenerationRecord) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		log.Warn().Str("record_id", record.ID.String()).Msg("⚠️ Worker stopped, dropping generation record")
		return
	}

	select {
	case w.queue <- record:
	default:
		log.Warn().Str("record_id", record.ID.String()).Msg("⚠️ Record queue full, dropping generation record")
	}
}

func (w *recordWorker) processRecords(workerID int) {
	defer w.wg.Done()

	for record := range w.queue {
		if err := w.repo.Create(record); err != nil {
			log.Error().Err(err).
				Int("worker", workerID).
				Str("record_id", record.ID.String()).
				Msg("❌ Failed to save generation record")
			continue
		}
		log.Debug().
			Int("worker", workerID).
			Str("record_id", record.ID.String()).
			Str("kind", record.Kind).
			Str("outcome", string(record.Outcome)).
			Msg("💾 Generation record saved")
	}
}
