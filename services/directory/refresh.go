package directory

import (
	"context"
	"time"

	"amedick/models"
	"amedick/utils"

	"go.uber.org/zap"
)

// Lister reads the approved doctors from the primary store.
type Lister interface {
	ListApproved(ctx context.Context) ([]models.DoctorSummary, error)
}

// Load serves the directory from cache, filling it from lister on a miss.
func Load(ctx context.Context, lister Lister, cache Cache) ([]models.DoctorSummary, error) {
	if cache != nil {
		if doctors, ok := cache.Get(ctx); ok {
			return doctors, nil
		}
	}
	doctors, err := lister.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	if doctors == nil {
		doctors = []models.DoctorSummary{}
	}
	if cache != nil {
		cache.Set(ctx, doctors)
	}
	return doctors, nil
}

// Refresh rebuilds the cached directory from lister.
func Refresh(ctx context.Context, lister Lister, cache Cache) error {
	doctors, err := lister.ListApproved(ctx)
	if err != nil {
		return err
	}
	cache.Set(ctx, doctors)
	return nil
}

// StartRefresher rebuilds the directory every interval until ctx is done.
func StartRefresher(ctx context.Context, interval time.Duration, lister Lister, cache Cache) {
	logger := utils.GetLogger().Named("directory")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Directory refresher stopped")
				return
			case <-ticker.C:
				if err := Refresh(ctx, lister, cache); err != nil {
					logger.Warn("Directory refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
