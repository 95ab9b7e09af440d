package scheduler

import (
	"context"
	"time"

	"atlas-introductions/connection"
	"atlas-introductions/retry"

	"github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CompletionSweepScheduler periodically rechecks accepted pairings whose
// compatibility completion may have been missed, for example when a profile
// store read failed during submission.
type CompletionSweepScheduler struct {
	log      logrus.FieldLogger
	ctx      context.Context
	db       *gorm.DB
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewCompletionSweepScheduler creates a new completion sweep scheduler
func NewCompletionSweepScheduler(log logrus.FieldLogger, ctx context.Context, db *gorm.DB) *CompletionSweepScheduler {
	return &CompletionSweepScheduler{
		log:      log.WithField("component", "completion-sweep-scheduler"),
		ctx:      ctx,
		db:       db,
		interval: 10 * time.Minute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithInterval sets the sweep interval
func (s *CompletionSweepScheduler) WithInterval(interval time.Duration) *CompletionSweepScheduler {
	s.interval = interval
	return s
}

// Start begins the background completion sweeping
func (s *CompletionSweepScheduler) Start() {
	s.log.WithField("interval", s.interval).Info("Starting completion sweep scheduler")

	go s.run()
}

// Stop gracefully stops the scheduler
func (s *CompletionSweepScheduler) Stop() {
	s.log.Info("Stopping completion sweep scheduler")
	close(s.stop)
	<-s.done
	s.log.Info("Completion sweep scheduler stopped")
}

func (s *CompletionSweepScheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweepAcceptedPairings()

	for {
		select {
		case <-ticker.C:
			s.sweepAcceptedPairings()
		case <-s.stop:
			return
		case <-s.ctx.Done():
			s.log.Info("Context cancelled, stopping completion sweep scheduler")
			return
		}
	}
}

// sweepAcceptedPairings rechecks accepted pairings for all tenants
func (s *CompletionSweepScheduler) sweepAcceptedPairings() {
	s.log.Debug("Sweeping accepted pairings for all tenants")

	tenantIds, err := s.getTenantsWithAcceptedPairings()
	if err != nil {
		s.log.WithError(err).Error("Failed to get tenants with accepted pairings")
		return
	}

	if len(tenantIds) == 0 {
		s.log.Debug("No tenants with accepted pairings found")
		return
	}

	s.log.WithField("tenantCount", len(tenantIds)).Debug("Sweeping accepted pairings for tenants")

	for _, tenantId := range tenantIds {
		s.sweepAcceptedPairingsForTenant(tenantId)
	}
}

// getTenantsWithAcceptedPairings retrieves all tenant IDs that have accepted stage pairings
func (s *CompletionSweepScheduler) getTenantsWithAcceptedPairings() ([]uuid.UUID, error) {
	var tenantIds []uuid.UUID

	retryConfig := retry.DefaultRetryConfig().
		WithLogger(s.log.WithField("operation", "get-tenants-with-accepted-pairings")).
		WithContext(s.ctx).
		WithMaxRetries(2).
		WithInitialDelay(500 * time.Millisecond)

	err := retry.ExecuteWithRetry(retryConfig, func() error {
		return s.db.Model(&connection.Entity{}).
			Where("stage = ?", connection.StageAccepted).
			Distinct("tenant_id").
			Pluck("tenant_id", &tenantIds).Error
	})

	return tenantIds, err
}

// sweepAcceptedPairingsForTenant rechecks accepted pairings for a specific tenant
func (s *CompletionSweepScheduler) sweepAcceptedPairingsForTenant(tenantId uuid.UUID) {
	retryConfig := retry.DefaultRetryConfig().
		WithLogger(s.log.WithFields(logrus.Fields{
			"operation": "sweep-accepted-pairings",
			"tenantId":  tenantId,
		})).
		WithContext(s.ctx).
		WithMaxRetries(3).
		WithInitialDelay(1 * time.Second).
		WithMaxDelay(10 * time.Second)

	err := retry.ExecuteWithRetry(retryConfig, func() error {
		tenantModel, err := tenant.Create(tenantId, "background-scheduler", 1, 0)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"tenantId": tenantId,
				"error":    err,
			}).Error("Failed to create tenant model")
			return err
		}

		tenantCtx := tenant.WithContext(s.ctx, tenantModel)

		processor := connection.NewProcessor(s.log, tenantCtx, s.db)

		_, err = processor.SweepAcceptedPairingsAndEmit(uuid.New())
		return err
	})

	if err != nil {
		s.log.WithFields(logrus.Fields{
			"tenantId": tenantId,
			"error":    err,
		}).Error("Failed to sweep accepted pairings for tenant after retries")
		return
	}

	s.log.WithField("tenantId", tenantId).Debug("Successfully swept accepted pairings for tenant")
}
