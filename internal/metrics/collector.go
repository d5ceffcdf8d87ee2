// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// 采样指标
	samplingRequestsTotal   *prometheus.CounterVec
	samplingDuration        *prometheus.HistogramVec
	samplingSpansTotal      *prometheus.CounterVec
	samplingAnchorResamples *prometheus.CounterVec
	samplingDocumentTokens  prometheus.Histogram

	logger *zap.Logger
}

// NewCollector 创建指标收集器
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.samplingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sampling_requests_total",
			Help:      "Total number of anchor/positive sampling calls",
		},
		[]string{"strategy", "status"},
	)

	c.samplingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sampling_duration_seconds",
			Help:      "Sampling call duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"strategy"},
	)

	c.samplingSpansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sampling_spans_total",
			Help:      "Total number of sampled spans",
		},
		[]string{"kind"},
	)

	c.samplingAnchorResamples = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sampling_anchor_resamples_total",
			Help:      "Total number of anchors redrawn because they admitted no positive",
		},
		[]string{"strategy"},
	)

	c.samplingDocumentTokens = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sampling_document_tokens",
			Help:      "Number of tokens per sampled document",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		},
	)

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// =============================================================================
// ✂️ 采样指标记录
// =============================================================================

// RecordSample 记录一次采样调用。
// documentTokens 为 0 表示调用在分词前失败，不计入文档长度分布。
func (c *Collector) RecordSample(strategy, status string, duration time.Duration, documentTokens, anchors, positives, resamples int) {
	if strategy == "" {
		strategy = "none"
	}
	c.samplingRequestsTotal.WithLabelValues(strategy, status).Inc()
	c.samplingDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if documentTokens > 0 {
		c.samplingDocumentTokens.Observe(float64(documentTokens))
	}
	if anchors > 0 {
		c.samplingSpansTotal.WithLabelValues("anchor").Add(float64(anchors))
	}
	if positives > 0 {
		c.samplingSpansTotal.WithLabelValues("positive").Add(float64(positives))
	}
	if resamples > 0 {
		c.samplingAnchorResamples.WithLabelValues(strategy).Add(float64(resamples))
	}
}
