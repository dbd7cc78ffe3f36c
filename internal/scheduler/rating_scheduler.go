package scheduler

import (
	"github.com/ekaraca/mekanbul-backend/internal/app/service"
	"github.com/ekaraca/mekanbul-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RatingScheduler runs the nightly place rating reconcile
type RatingScheduler struct {
	cron          *cron.Cron
	reviewService *service.ReviewService
}

func NewRatingScheduler(reviewService *service.ReviewService) *RatingScheduler {
	return &RatingScheduler{
		cron:          cron.New(),
		reviewService: reviewService,
	}
}

// Start schedules the reconcile job at 03:00 every night
func (s *RatingScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting nightly place rating reconcile", nil)
		if err := s.reviewService.ReconcilePlaceRatings(); err != nil {
			logger.Error("Place rating reconcile failed", err, nil)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Rating scheduler started", nil)
	return nil
}

func (s *RatingScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Rating scheduler stopped", nil)
}
