package metrics

import (
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var publisherEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "publisher",
	Name:      "events_total",
	Help:      "Count of token operation events handed to the stream.",
}, []string{"network", "status"})

// Publisher tracks outcomes of best-effort event publication.
type Publisher struct {
	network string
}

// NewPublisher constructs a Publisher collector.
func NewPublisher(network model.Network) *Publisher {
	return &Publisher{network: networkLabel(network)}
}

// ObservePublish records events delivered or dropped by a flush.
func (m Publisher) ObservePublish(err error, events int) {
	publisherEventsTotal.WithLabelValues(m.network, status(err)).Add(float64(events))
}
