// Package scheduler runs the periodic reconciliation sweep that deletes blobs
// no attachment row references anymore.
package scheduler

import (
	"context"
	"time"

	"mediacatalog/logger"
	"mediacatalog/services"
	"mediacatalog/storage"
)

// sweepTimeout bounds one full sweep run.
const sweepTimeout = 5 * time.Minute

// Sweeper reconciles the blob store against the attachment metadata.
type Sweeper struct {
	repo     services.AttachmentRepository
	store    storage.BlobStore
	interval time.Duration
	stop     chan struct{}
}

// NewSweeper creates a sweeper running every interval.
func NewSweeper(repo services.AttachmentRepository, store storage.BlobStore, interval time.Duration) *Sweeper {
	return &Sweeper{
		repo:     repo,
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs one sweep immediately and then on every tick, in a goroutine.
func (s *Sweeper) Start() {
	logger.Info("Orphan sweep scheduler started (every %s)", s.interval)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce()
		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop.
func (s *Sweeper) Stop() {
	close(s.stop)
}

func (s *Sweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	deleted, err := s.Sweep(ctx)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Error("Orphan sweep failed")
		return
	}
	if deleted > 0 {
		logger.WithFields(map[string]interface{}{
			"deleted": deleted,
		}).Info("Orphan sweep removed unreferenced blobs")
	}
}

// Sweep deletes every blob without a metadata row and returns how many went.
// Blobs are listed before the metadata: an upload that lands between the two
// listings has its row by the time the key set is compared, so in-flight
// attachments are never swept.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	blobKeys, err := s.store.List(ctx, "")
	if err != nil {
		return 0, err
	}

	referenced, err := s.repo.ListStorageKeys(ctx)
	if err != nil {
		return 0, err
	}
	refSet := make(map[string]struct{}, len(referenced))
	for _, key := range referenced {
		refSet[key] = struct{}{}
	}

	deleted := 0
	for _, key := range blobKeys {
		if _, ok := refSet[key]; ok {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logger.WithFields(map[string]interface{}{
				"storage_key": key,
				"error":       err.Error(),
			}).Warn("Failed to delete orphaned blob")
			continue
		}
		deleted++
	}
	return deleted, nil
}
