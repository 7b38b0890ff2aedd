package pipeline

import (
	"context"
	"sync"
	"time"

	"ljb001/orderboard/config"
	"ljb001/orderboard/internal/portal"
	"ljb001/orderboard/logger"
)

// OrderSource is the portal surface the pipeline consumes.
// *portal.Client is the production implementation.
type OrderSource interface {
	Login(ctx context.Context) (bool, error)
	FetchOrders(ctx context.Context, targetDate string) ([]portal.OrderRow, error)
	OrderDetails(ctx context.Context, orderID string) (*portal.OrderDetail, error)
}

// Pipeline runs the full aggregation flow for one request:
// login, listing fetch, concurrent detail fan-out, grouping.
type Pipeline struct {
	source  OrderSource
	workers int
	timeout time.Duration
	log     *logger.Logger
}

// New creates a pipeline over the given order source
func New(source OrderSource, cfg *config.Config) *Pipeline {
	return &Pipeline{
		source:  source,
		workers: cfg.FetchWorkers,
		timeout: cfg.RequestTimeout,
		log:     logger.ForPipeline(),
	}
}

// GetFilteredOrders returns the day's orders grouped by shop and warehouse,
// wrapped in the uniform envelope. A login failure aborts with code 401;
// every other upstream failure degrades to partial or empty data with
// code 200. The whole flow runs under one deadline.
func (p *Pipeline) GetFilteredOrders(ctx context.Context, targetDate string) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ok, err := p.source.Login(ctx)
	if err != nil || !ok {
		if err != nil {
			p.log.Error().Err(err).Msg("登录失败")
		} else {
			p.log.Error().Msg("登录失败")
		}
		return authFailure()
	}

	rows, err := p.source.FetchOrders(ctx, targetDate)
	if err != nil {
		// No data from this call, not an error state for the consumer.
		p.log.Error().Err(err).Str("target_date", targetDate).Msg("菜单列表请求失败")
		rows = nil
	}

	details := p.fetchDetails(ctx, rows)
	groups := Aggregate(details)

	if len(groups) == 0 {
		return emptyResult()
	}
	return groupedResult(groups)
}

// fetchDetails fans the day's rows out over a bounded worker pool. Results
// land at their input index so output order matches listing order regardless
// of completion order; failed orders leave a gap that is filtered afterwards.
func (p *Pipeline) fetchDetails(ctx context.Context, rows []portal.OrderRow) []portal.OrderDetail {
	results := make([]*portal.OrderDetail, len(rows))
	semaphore := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, row := range rows {
		if row.ID == "" {
			continue
		}

		wg.Add(1)
		go func(i int, row portal.OrderRow) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			detail, err := p.source.OrderDetails(ctx, row.ID)
			if err != nil {
				// One order's failure never aborts its siblings.
				p.log.Warn().Err(err).Str("order_id", row.ID).Msg("菜单详情处理失败")
				return
			}

			detail.CreatedAt = row.SetDate
			if detail.CreatedAt == "" {
				detail.CreatedAt = portal.UnknownTime
			}
			results[i] = detail
		}(i, row)
	}

	wg.Wait()

	details := make([]portal.OrderDetail, 0, len(rows))
	for _, detail := range results {
		if detail != nil {
			details = append(details, *detail)
		}
	}
	return details
}
