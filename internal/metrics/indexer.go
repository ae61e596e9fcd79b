package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_batch_total",
		Help:      "Count of batches processed.",
	}, []string{"network", "status"})

	indexerProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"network"})

	indexerProcessHeightTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_height_total",
		Help:      "Count of block heights processed.",
	}, []string{"network", "status"})

	indexerProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of processing a single block height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	indexerTokenOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "token_operations_total",
		Help:      "Count of decoded runes operations by kind.",
	}, []string{"network", "kind"})

	indexerCursor = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "cursor_height",
		Help:      "Next block height the indexer will process.",
	}, []string{"network"})

	indexerPendingDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "pending_dropped_total",
		Help:      "Count of failed heights dropped because the retry set was full.",
	}, []string{"network"})

	indexerPendingHeights = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "indexer",
		Name:      "pending_heights",
		Help:      "Number of failed heights queued for retry.",
	}, []string{"network"})
)

// Indexer tracks metrics for the runes ingestion scheduler.
type Indexer struct {
	network string
}

// NewIndexer constructs an Indexer collector.
func NewIndexer(network model.Network) *Indexer {
	return &Indexer{network: networkLabel(network)}
}

// ObserveProcessBatch records processing of a batch of heights.
func (m Indexer) ObserveProcessBatch(err error, heights int, started time.Time) {
	s := status(err)
	indexerProcessBatchTotal.WithLabelValues(m.network, s).Inc()
	indexerProcessBatchDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
	indexerProcessBatchSize.WithLabelValues(m.network).Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height.
func (m Indexer) ObserveProcessHeight(err error, _ uint64, started time.Time) {
	s := status(err)
	indexerProcessHeightTotal.WithLabelValues(m.network, s).Inc()
	indexerProcessHeightDuration.WithLabelValues(m.network, s).Observe(time.Since(started).Seconds())
}

// ObserveTokenOperation counts one decoded operation.
func (m Indexer) ObserveTokenOperation(kind model.OperationKind) {
	indexerTokenOperationsTotal.WithLabelValues(m.network, string(kind)).Inc()
}

// SetCursor publishes the cursor position and the size of the retry set.
func (m Indexer) SetCursor(next uint64, pending int) {
	indexerCursor.WithLabelValues(m.network).Set(float64(next))
	indexerPendingHeights.WithLabelValues(m.network).Set(float64(pending))
}

// ObservePendingDropped counts failed heights that did not fit into the retry set.
func (m Indexer) ObservePendingDropped(count int) {
	indexerPendingDroppedTotal.WithLabelValues(m.network).Add(float64(count))
}
