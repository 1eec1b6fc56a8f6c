package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectBSTreeStats(t *testing.T, reader sdkmetric.Reader, meterName string) map[string][]metricdata.DataPoint[int64] {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	res := make(map[string][]metricdata.DataPoint[int64])
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != meterName {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, m.Name)
			res[m.Name] = sum.DataPoints
		}
	}
	return res
}

func sumDataPoints(dps []metricdata.DataPoint[int64]) int64 {
	total := int64(0)
	for _, dp := range dps {
		total += dp.Value
	}
	return total
}

func TestBSTreeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(mp)
	defer func() {
		otel.SetMeterProvider(prev)
		_ = mp.Shutdown(context.Background())
	}()

	tree := newIntBSTree(t, []int{5, 3, 8}, WithBSTreeStats[intKey]("test"))
	require.ErrorIs(t, tree.Insert(intKey{K: 5}), ErrBSTreeDuplicateKey)
	require.NoError(t, tree.Delete(intKey{K: 3}))
	require.ErrorIs(t, tree.Delete(intKey{K: 3}), ErrBSTreeNotFound)

	stats := collectBSTreeStats(t, reader, BSTreeStatsName+"/test")
	require.Equal(t, int64(3), sumDataPoints(stats["bst.insert.count"]))
	require.Equal(t, int64(1), sumDataPoints(stats["bst.delete.count"]))
	require.Equal(t, int64(2), sumDataPoints(stats["bst.node.count"]))

	failed := stats["bst.op.failed.count"]
	require.Len(t, failed, 2)
	require.Equal(t, int64(2), sumDataPoints(failed))
	for _, dp := range failed {
		op, ok := dp.Attributes.Value(attribute.Key("bst.op"))
		require.True(t, ok)
		reason, ok := dp.Attributes.Value(attribute.Key("bst.reason"))
		require.True(t, ok)
		switch op.AsString() {
		case string(bstOpInsert):
			require.Equal(t, ErrBSTreeDuplicateKey.Error(), reason.AsString())
		case string(bstOpDelete):
			require.Equal(t, ErrBSTreeNotFound.Error(), reason.AsString())
		default:
			t.Fatalf("unknown op %s", op.AsString())
		}
	}

	tree.Clear()
	stats = collectBSTreeStats(t, reader, BSTreeStatsName+"/test")
	require.Equal(t, int64(0), sumDataPoints(stats["bst.node.count"]))
	require.Equal(t, int64(1), sumDataPoints(stats["bst.delete.count"]))
}

func TestBSTreeStats_Nil(t *testing.T) {
	var stats *bstreeStats
	require.NotPanics(t, func() {
		stats.IncreaseInsertCount()
		stats.IncreaseDeleteCount()
		stats.IncreaseFailedCount(bstOpInsert, ErrBSTreeDuplicateKey)
		stats.RecordClear(10)
	})
}
