package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"escrowpay/internal/usecase"
)

const defaultIntervalSeconds = 30

// ReconciliationScheduler owns the repeating timer that drives the
// reconciliation pass. Each tick is independent and idempotent: the retry pass
// runs first, then the escalation pass.

type ReconciliationScheduler struct {
	usecase  usecase.IReconciliationUseCase
	interval time.Duration
}

func NewReconciliationScheduler(uc usecase.IReconciliationUseCase) *ReconciliationScheduler {
	return &ReconciliationScheduler{
		usecase:  uc,
		interval: intervalFromEnv(),
	}
}

// Start launches the scheduler loop; it stops when ctx is cancelled.
func (s *ReconciliationScheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ReconciliationScheduler) run(ctx context.Context) {
	log.Printf("[reconciliation][scheduler] started interval=%s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[reconciliation][scheduler] stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *ReconciliationScheduler) tick(ctx context.Context) {
	if _, err := s.usecase.RetryPending(ctx); err != nil {
		log.Printf("[reconciliation][scheduler] retry pass failed err=%v", err)
	}
	if _, err := s.usecase.EscalateExhausted(ctx); err != nil {
		log.Printf("[reconciliation][scheduler] escalation pass failed err=%v", err)
	}
}

func intervalFromEnv() time.Duration {
	if v := os.Getenv("RECONCILIATION_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("[reconciliation][scheduler] invalid RECONCILIATION_INTERVAL_SECONDS=%q; using default", v)
	}
	return defaultIntervalSeconds * time.Second
}
