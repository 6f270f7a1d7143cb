package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/metrics"
)

var ErrPoolStopped = errors.New("extraction pool stopped")

// ExtractionPool runs extractions on a fixed number of workers so OCR-heavy
// uploads cannot take every CPU on the host.
type ExtractionPool interface {
	Start(ctx context.Context)
	Stop()
	Submit(ctx context.Context, doc *Document) (*ExtractionResult, error)
}

type extractionJob struct {
	ctx    context.Context
	doc    *Document
	result chan<- extractionOutcome
}

type extractionOutcome struct {
	result *ExtractionResult
	err    error
}

type extractionPool struct {
	extractor   ExtractorService
	jobQueue    chan extractionJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	log         *zap.Logger
}

func NewExtractionPool(extractor ExtractorService, concurrency, queueSize int, log *zap.Logger) ExtractionPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &extractionPool{
		extractor:   extractor,
		jobQueue:    make(chan extractionJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		log:         logger.OrNop(log),
	}
}

// Start implements ExtractionPool.
func (p *extractionPool) Start(ctx context.Context) {
	p.log.Info("starting extraction pool", zap.Int("workers", p.concurrency))

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.processJobs(ctx, i+1)
	}
}

// Stop implements ExtractionPool. Safe to call more than once.
func (p *extractionPool) Stop() {
	p.stopOnce.Do(func() {
		p.log.Info("stopping extraction pool")
		close(p.stopChan)
	})
	p.wg.Wait()
}

// Submit implements ExtractionPool. It blocks until a worker has extracted
// doc, ctx ends, or the pool stops.
func (p *extractionPool) Submit(ctx context.Context, doc *Document) (*ExtractionResult, error) {
	select {
	case <-p.stopChan:
		return nil, ErrPoolStopped
	default:
	}

	resultCh := make(chan extractionOutcome, 1)
	job := extractionJob{ctx: ctx, doc: doc, result: resultCh}

	select {
	case p.jobQueue <- job:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.stopChan:
		return nil, ErrPoolStopped
	}

	select {
	case out := <-resultCh:
		return out.result, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.stopChan:
		return nil, ErrPoolStopped
	}
}

func (p *extractionPool) processJobs(ctx context.Context, workerID int) {
	defer p.wg.Done()
	log := p.log.With(zap.Int("worker", workerID))
	log.Debug("worker started")

	for {
		select {
		case <-p.stopChan:
			log.Debug("worker stopped")
			return
		case <-ctx.Done():
			log.Debug("worker context done")
			return
		case job := <-p.jobQueue:
			// Caller already gave up; result channel is buffered.
			if err := job.ctx.Err(); err != nil {
				job.result <- extractionOutcome{err: err}
				continue
			}

			metrics.PoolJobsActive.Inc()
			result, err := p.extractor.ExtractDocument(job.ctx, job.doc)
			metrics.PoolJobsActive.Dec()

			job.result <- extractionOutcome{result: result, err: err}
		}
	}
}
