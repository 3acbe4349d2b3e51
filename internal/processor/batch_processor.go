package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"propmatch/server/config"
	"propmatch/server/internal/database"
	"propmatch/server/internal/matching"
	"propmatch/server/internal/models"
	"propmatch/server/internal/queue"
)

// BatchProcessor handles the processing of imported listing batches
type BatchProcessor struct {
	db        *gorm.DB
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.ListingQueue
	engine    *matching.Engine
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance
func NewBatchProcessor(db *gorm.DB, queue *queue.ListingQueue, config *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		db:     db,
		queue:  queue,
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetMatchingEngine wires the alert matching engine into the ingest
// path. When set, every successfully stored listing is matched against
// saved alerts; matching failures never fail the batch.
func (p *BatchProcessor) SetMatchingEngine(engine *matching.Engine) {
	p.engine = engine
}

// Start subscribes the processor to the queue. Subscribing once keeps
// each batch processed exactly once regardless of queue fan-out.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(func(batch []*models.Listing) error {
		p.waitGroup.Add(1)
		defer p.waitGroup.Done()
		return p.processBatch(batch)
	})
}

// Stop gracefully shuts down the processor
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

// processBatch handles a single batch of listings with transaction and retry logic
func (p *BatchProcessor) processBatch(batch []*models.Listing) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchProcessing.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, p.config.BatchProcessing.MaxRetries)
			select {
			case <-p.ctx.Done():
				return p.ctx.Err()
			case <-time.After(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second):
			}
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertListings(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert listings batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully processed batch of %d listings", len(batch))
			p.matchBatch(batch)
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", p.config.BatchProcessing.MaxRetries, err)
}

// matchBatch runs alert matching for each stored listing. Failures are
// logged only; ingestion already succeeded at this point.
func (p *BatchProcessor) matchBatch(batch []*models.Listing) {
	if p.engine == nil {
		return
	}
	for _, listing := range batch {
		if _, err := p.engine.RunMatching(listing, matching.TriggerCreate); err != nil {
			p.logger.WithError(err).WithField("listing_id", listing.ID).Error("Alert matching failed for ingested listing")
		}
	}
}
