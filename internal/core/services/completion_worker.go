package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/platform/metrics"
)

const completionBatchSize = 100

// RunCompletionWorker marks confirmed stays that have ended as COMPLETED
// every interval until ctx is done.
func (s *BookingService) RunCompletionWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.opts.logger.Info("completion worker started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.opts.logger.Info("completion worker stopped")
			return
		case <-ticker.C:
			if _, err := s.CompleteEndedBookings(ctx); err != nil {
				s.opts.logger.Error("completing ended bookings failed", zap.Error(err))
			}
		}
	}
}

// CompleteEndedBookings processes one batch and returns how many bookings
// were completed.
func (s *BookingService) CompleteEndedBookings(ctx context.Context) (int, error) {
	ended, err := s.bookingRepo.ListEndedConfirmed(ctx, s.opts.now().UTC(), completionBatchSize)
	if err != nil {
		return 0, err
	}

	if len(ended) == 0 {
		return 0, nil
	}

	s.opts.logger.Info("completing ended bookings", zap.Int("count", len(ended)))

	system := domain.Principal{Role: domain.RoleAdmin}
	completed := 0
	for _, b := range ended {
		if err := s.bookingRepo.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCompleted); err != nil {
			s.opts.logger.Warn("failed to complete booking", zap.Stringer("booking_id", b.ID), zap.Error(err))
			continue
		}
		completed++
		s.invalidateSchedule(ctx, b.YurtID)
		metrics.IncTransition(kindBooking, domain.BookingCompleted.String())
		s.opts.auditor.Record(ctx, system, "status:"+domain.BookingCompleted.String(), kindBooking, b.ID, "completion worker")
	}

	return completed, nil
}
