package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	actionsAppliedCounter    prometheus.Counter
	actionsRejectedCounter   prometheus.Counter
	handsCompletedCounter    prometheus.Counter
	activeTablesCountGauge   prometheus.Gauge
	backlogReplayedCounter   prometheus.Counter
	snapshotsRestoredCounter prometheus.Counter
}

func (m *metrics) ActionApplied() {
	m.actionsAppliedCounter.Inc()
}

func (m *metrics) ActionRejected() {
	m.actionsRejectedCounter.Inc()
}

func (m *metrics) HandCompleted() {
	m.handsCompletedCounter.Inc()
}

func (m *metrics) SetActiveTablesCount(count int) {
	m.activeTablesCountGauge.Set(float64(count))
}

func (m *metrics) BacklogActionReplayed() {
	m.backlogReplayedCounter.Inc()
}

func (m *metrics) SnapshotRestored() {
	m.snapshotsRestoredCounter.Inc()
}

var Metrics = &metrics{
	actionsAppliedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_actions_applied_total",
		Help: "Total number of actions applied to tables",
	}),
	actionsRejectedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_actions_rejected_total",
		Help: "Total number of actions rejected by verification",
	}),
	handsCompletedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_hands_completed_total",
		Help: "Total number of hands played to completion",
	}),
	activeTablesCountGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "holdem_active_tables_count",
		Help: "Count of the entries in the table manager activeTables map",
	}),
	backlogReplayedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_backlog_actions_replayed_total",
		Help: "Total number of backlog actions replayed onto restored tables",
	}),
	snapshotsRestoredCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "holdem_snapshots_restored_total",
		Help: "Total number of tables restored from persisted snapshots",
	}),
}
