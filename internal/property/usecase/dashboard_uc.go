package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

// DashboardUsecase summarises the collections for the operator panel.
type DashboardUsecase struct {
	properties domain.PropertyRepository
	queries    domain.QueryRepository
	views      domain.ViewRepository
}

func NewDashboardUsecase(p domain.PropertyRepository, q domain.QueryRepository, v domain.ViewRepository) *DashboardUsecase {
	return &DashboardUsecase{properties: p, queries: q, views: v}
}

// Stats counts the three collections concurrently.
func (uc *DashboardUsecase) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, span := tracer.Start(ctx, "DashboardUsecase.Stats")
	defer span.End()

	var stats domain.Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Properties, err = uc.properties.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Queries, err = uc.queries.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Views, err = uc.views.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return domain.Stats{}, err
	}
	return stats, nil
}
