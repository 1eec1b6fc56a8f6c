package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	BSTreeStatsName = "xbst/bst"
)

type bstOp string

const (
	bstOpInsert bstOp = "insert"
	bstOpDelete bstOp = "delete"
)

type bstreeStats struct {
	nodeCount   metric.Int64UpDownCounter
	insertCount metric.Int64Counter
	deleteCount metric.Int64Counter
	failedCount metric.Int64Counter
}

func (stats *bstreeStats) IncreaseInsertCount() {
	if stats == nil {
		return
	}
	stats.nodeCount.Add(context.Background(), 1)
	stats.insertCount.Add(context.Background(), 1)
}

func (stats *bstreeStats) IncreaseDeleteCount() {
	if stats == nil {
		return
	}
	stats.nodeCount.Add(context.Background(), -1)
	stats.deleteCount.Add(context.Background(), 1)
}

func (stats *bstreeStats) IncreaseFailedCount(op bstOp, reason error) {
	if stats == nil || reason == nil {
		return
	}
	as := attribute.NewSet(
		attribute.String("bst.op", string(op)),
		attribute.String("bst.reason", reason.Error()),
	)
	stats.failedCount.Add(context.Background(), 1, metric.WithAttributeSet(as))
}

func (stats *bstreeStats) RecordClear(released int64) {
	if stats == nil || released <= 0 {
		return
	}
	stats.nodeCount.Add(context.Background(), -released)
}

func newBSTreeStats(name string) *bstreeStats {
	meterName := fmt.Sprintf("%s/%s", BSTreeStatsName, name)
	return &bstreeStats{
		nodeCount: lo.Must[metric.Int64UpDownCounter](otel.Meter(meterName).
			Int64UpDownCounter(
				"bst.node.count",
				metric.WithDescription("The number of nodes in the binary search tree."),
			),
		),
		insertCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"bst.insert.count",
				metric.WithDescription("The number of inserted nodes."),
			),
		),
		deleteCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"bst.delete.count",
				metric.WithDescription("The number of deleted nodes, clear is excluded."),
			),
		),
		failedCount: lo.Must[metric.Int64Counter](otel.Meter(meterName).
			Int64Counter(
				"bst.op.failed.count",
				metric.WithDescription("The number of failed insert and delete operations."),
			),
		),
	}
}
