package database

import (
	"time"

	"github.com/midas-analytics/midas/internal/logging"
	"go.uber.org/zap"
)

const rollupView = "campaign_daily_rollup"

// RollupScheduler keeps the campaign_daily_rollup materialized view fresh
// while the server runs. Platform connectors write daily_performance rows
// throughout the day, so the rollup is refreshed on a fixed interval
// rather than per write.
type RollupScheduler struct {
	interval time.Duration
	stopChan chan struct{}
}

// NewRollupScheduler creates a scheduler refreshing at the given interval.
func NewRollupScheduler(interval time.Duration) *RollupScheduler {
	return &RollupScheduler{
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins periodic refreshes, including one immediately.
func (rs *RollupScheduler) Start() {
	logging.L().Info("starting rollup scheduler", zap.Duration("interval", rs.interval))
	go rs.loop()
}

// Stop gracefully stops the scheduler.
func (rs *RollupScheduler) Stop() {
	close(rs.stopChan)
}

func (rs *RollupScheduler) loop() {
	ticker := time.NewTicker(rs.interval)
	defer ticker.Stop()

	rs.refresh()

	for {
		select {
		case <-ticker.C:
			rs.refresh()
		case <-rs.stopChan:
			return
		}
	}
}

func (rs *RollupScheduler) refresh() {
	start := time.Now()

	// CONCURRENTLY needs the unique index on (report_date, campaign_id)
	// created by the initial migration.
	_, err := DB.Exec("REFRESH MATERIALIZED VIEW CONCURRENTLY " + rollupView)
	if err != nil {
		logging.L().Warn("failed to refresh rollup", zap.String("view", rollupView), zap.Error(err))
		return
	}

	logging.L().Info("refreshed rollup",
		zap.String("view", rollupView),
		zap.Duration("duration", time.Since(start)))
}
