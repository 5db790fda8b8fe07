package metrics

import (
	"errors"
	"strconv"

	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/prometheus/client_golang/prometheus"
)

// Фасад логирования.
var (
	CallsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllog_calls_dispatched_total",
			Help: "Number of facade calls forwarded to the sink",
		},
		[]string{"severity"},
	)
	UnclassifiedArgs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllog_unclassified_arguments_total",
			Help: "Number of facade arguments whose role could not be inferred",
		},
		[]string{"position"},
	)
	Recovered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllog_recovered_panics_total",
			Help: "Number of panics swallowed by the facade",
		},
		[]string{"stage"}, // resolve|sink
	)
)

var (
	FrameCacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calllog_frame_cache_operations_total",
			Help: "Frame name cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	FrameCacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "calllog_frame_cache_size",
			Help: "Number of parsed frame names currently in cache",
		},
	)
)

// Доставка и приём записей журнала через Kafka.
var (
	EntriesShipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_entries_shipped_total",
			Help: "Number of log entries written to Kafka",
		},
		[]string{"topic"},
	)
	EntriesShipFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_entries_ship_failed_total",
			Help: "Number of log entries that could not be written to Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

// MustRegister — регистрирует все метрики в prometheus.DefaultRegisterer.
// Повторный вызов безопасен: уже зарегистрированные коллекторы пропускаются.
func MustRegister() {
	for _, c := range []prometheus.Collector{
		CallsDispatched, UnclassifiedArgs, Recovered,
		FrameCacheOps, FrameCacheSize,
		EntriesShipped, EntriesShipFailed,
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
	} {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}

// Observer — реализация calllog.Observer поверх счётчиков Prometheus.
type Observer struct{}

var _ calllog.Observer = Observer{}

func (Observer) Dispatched(sev calllog.Severity) {
	CallsDispatched.WithLabelValues(sev.String()).Inc()
}

func (Observer) Unclassified(position int) {
	UnclassifiedArgs.WithLabelValues(strconv.Itoa(position)).Inc()
}

func (Observer) Recovered(stage string) {
	Recovered.WithLabelValues(stage).Inc()
}
