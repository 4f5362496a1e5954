package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xtree"

	parentedVariant = "parented"
	compactVariant  = "compact"
)

type treeStats struct {
	attrs          metric.MeasurementOption
	insertCount    metric.Int64Counter
	duplicateCount metric.Int64Counter
	insertDepths   metric.Int64Histogram
	nodeCount      metric.Int64UpDownCounter
}

// RecordInsert records a new node attached at the depth (root is 1).
func (stats *treeStats) RecordInsert(depth int) {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1, stats.attrs)
	stats.insertDepths.Record(context.Background(), int64(depth), stats.attrs)
	stats.nodeCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) IncreaseDuplicateCount() {
	if stats == nil {
		return
	}
	stats.duplicateCount.Add(context.Background(), 1, stats.attrs)
}

func (stats *treeStats) RecordRelease(count int64) {
	if stats == nil || count <= 0 {
		return
	}
	stats.nodeCount.Add(context.Background(), -count, stats.attrs)
}

func newTreeStats(cfg *treeCfg, variant string) *treeStats {
	if !cfg.isStatsEnabled {
		return nil
	}
	meterName := TreeStatsName
	if name := strings.TrimSpace(cfg.statsName); len(name) > 0 {
		meterName = fmt.Sprintf("%s/%s", TreeStatsName, name)
	}
	meter := otel.Meter(meterName)
	return &treeStats{
		attrs: metric.WithAttributeSet(attribute.NewSet(
			attribute.String("xtree.variant", variant),
		)),
		insertCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.insert.count",
			metric.WithDescription("The number of nodes attached by insert."),
		)),
		duplicateCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.insert.duplicate.count",
			metric.WithDescription("The number of inserts ignored because the key was present."),
		)),
		insertDepths: lo.Must[metric.Int64Histogram](meter.Int64Histogram(
			"xtree.insert.depth",
			metric.WithDescription("The depth at which a new node is attached. The root is at depth 1."),
		)),
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.node.count",
			metric.WithDescription("The number of live nodes."),
		)),
	}
}
