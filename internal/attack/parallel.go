package attack

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/geoprivacy/mobrisk/pkg/models"
)

// AllRisksParallel computes the risk of every individual in the dataset,
// fanning the per-individual computations out over the given number of
// workers. Each Risk call reads the dataset and touches only call-local
// scratch state, so no synchronization is needed beyond collecting results.
// The first error cancels outstanding work and is returned.
func (a *Attack) AllRisksParallel(ctx context.Context, dataset *models.Dataset, workers int) (*models.RiskReport, error) {
	if workers <= 1 {
		return a.AllRisks(ctx, dataset)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		id   string
		risk float64
		err  error
	}

	jobs := make(chan *models.Record)
	results := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				risk, err := a.Risk(ctx, dataset, record)
				select {
				case results <- result{id: record.ID, risk: risk, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range dataset.Records() {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := models.NewRiskReport(a.name)
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		report.Set(res.id, res.risk)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	a.logger.WithFields(logrus.Fields{
		"attack":      a.name,
		"individuals": report.Len(),
		"workers":     workers,
	}).Info("Dataset risk computed")

	return report, nil
}
