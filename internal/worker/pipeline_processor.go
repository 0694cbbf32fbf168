package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tradux/backend/internal/domain/model"
)

// PipelineFacade exposes the subset of application functionality required by the worker.
type PipelineFacade interface {
	OrdersForTranslation(ctx context.Context, limit int) ([]model.Order, error)
	RunTranslation(ctx context.Context, orderID string) error
}

// PipelineProcessor polls for freshly paid orders and drives each through the
// AI translation stages concurrently. The facade is responsible for making
// duplicate pickups harmless, so losing a race here only wastes a poll.
type PipelineProcessor struct {
	facade       PipelineFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPipelineProcessor constructs the pipeline worker pool.
func NewPipelineProcessor(facade PipelineFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PipelineProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PipelineProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PipelineProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PipelineProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PipelineProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PipelineProcessor) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersForTranslation(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders for translation failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PipelineProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *PipelineProcessor) handleOrder(ctx context.Context, order model.Order) {
	if err := p.facade.RunTranslation(ctx, order.ID); err != nil {
		p.logger.Error("translation pipeline failed",
			slog.String("order_id", order.ID),
			slog.String("order_number", order.OrderNumber),
			slog.String("error", err.Error()))
	}
}
