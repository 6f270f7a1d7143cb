package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubExtractor struct {
	calls   atomic.Int32
	block   chan struct{}
	started chan struct{}
}

func (s *stubExtractor) Extract(ctx context.Context, doc *Document) (string, error) {
	res, err := s.ExtractDocument(ctx, doc)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (s *stubExtractor) ExtractDocument(ctx context.Context, doc *Document) (*ExtractionResult, error) {
	s.calls.Add(1)
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &ExtractionResult{Text: "text of " + doc.Filename, Format: DetectFormat(doc.Filename)}, nil
}

func TestExtractionPool_Submit(t *testing.T) {
	extractor := &stubExtractor{}
	pool := NewExtractionPool(extractor, 2, 4, zaptest.NewLogger(t))
	pool.Start(context.Background())
	defer pool.Stop()

	var wg sync.WaitGroup
	for _, name := range []string{"a.txt", "b.pdf", "c.docx", "d.txt", "e.txt"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := pool.Submit(context.Background(), &Document{Filename: name})
			if assert.NoError(t, err) {
				assert.Equal(t, "text of "+name, res.Text)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), extractor.calls.Load())
}

func TestExtractionPool_PropagatesExtractionErrors(t *testing.T) {
	extractor := NewExtractorService(&fakeTextLayer{pages: []string{""}}, &fakeRasterizer{}, &fakeOCR{
		errs: map[string]error{"page-0": ErrOCRUnavailable},
	}, nil)
	pool := NewExtractionPool(extractor, 1, 1, nil)
	pool.Start(context.Background())
	defer pool.Stop()

	_, err := pool.Submit(context.Background(), &Document{Filename: "scan.pdf"})

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestExtractionPool_SubmitAfterStop(t *testing.T) {
	pool := NewExtractionPool(&stubExtractor{}, 1, 1, nil)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	_, err := pool.Submit(context.Background(), &Document{Filename: "a.txt"})

	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestExtractionPool_CallerCancelled(t *testing.T) {
	extractor := &stubExtractor{block: make(chan struct{}), started: make(chan struct{}, 1)}
	pool := NewExtractionPool(extractor, 1, 1, nil)
	pool.Start(context.Background())
	defer pool.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := pool.Submit(ctx, &Document{Filename: "slow.pdf"})
		errCh <- err
	}()

	select {
	case <-extractor.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never reached a worker")
	}
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not return after cancel")
	}
}

func TestExtractionPool_StopUnblocksWaitingCallers(t *testing.T) {
	extractor := &stubExtractor{block: make(chan struct{}), started: make(chan struct{}, 1)}
	pool := NewExtractionPool(extractor, 1, 0, nil)
	pool.Start(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := pool.Submit(context.Background(), &Document{Filename: "slow.pdf"})
		errCh <- err
	}()
	<-extractor.started

	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrPoolStopped)
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not return after Stop")
	}

	close(extractor.block)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the running job finished")
	}
}
