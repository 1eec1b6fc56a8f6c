package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xbst/lib/infra"
	"github.com/benz9527/xbst/lib/tree"
	"github.com/benz9527/xbst/lib/xlog"
	"github.com/benz9527/xbst/observability"
)

var (
	errUnknownOrder    = errors.New("unknown traverse order")
	errUnknownRender   = errors.New("unknown render style")
	errUnknownExporter = errors.New("unknown metrics exporter")
)

var cmdRun = &cli.Command{
	Name:      "run",
	Usage:     "insert the keys, delete some of them and print the tree",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.IntSliceFlag{
			Name:     "keys",
			Usage:    "keys to insert in order, comma separated",
			Required: true,
		},
		&cli.IntSliceFlag{
			Name:  "delete",
			Usage: "keys to delete after the inserts, comma separated",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "pre, in or post",
			Value: "in",
		},
		&cli.StringFlag{
			Name:  "render",
			Usage: "ascii or treeprint",
			Value: "ascii",
		},
	},
	Action: runTree,
}

type intKey = infra.Key[int]

type runConfig struct {
	out        io.Writer
	errOut     io.Writer
	keys       []int
	deletes    []int
	order      tree.TraverseOrder
	render     string
	metrics    string
	logLevel   string
	logFile    string
	arenaCap   uint32
	arenaSlabs uint32
	desc       bool
	succ       bool
}

func parseOrder(name string) (tree.TraverseOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pre":
		return tree.PreOrder, nil
	case "in":
		return tree.InOrder, nil
	case "post":
		return tree.PostOrder, nil
	default:
	}
	return 0, fmt.Errorf("%w: %s", errUnknownOrder, name)
}

func parseRunConfig(cctx *cli.Context) (*runConfig, error) {
	order, err := parseOrder(cctx.String("order"))
	if err != nil {
		return nil, err
	}
	render := strings.ToLower(strings.TrimSpace(cctx.String("render")))
	if render != "ascii" && render != "treeprint" {
		return nil, fmt.Errorf("%w: %s", errUnknownRender, render)
	}
	metrics := strings.ToLower(strings.TrimSpace(cctx.String("metrics")))
	if metrics != "" && metrics != "console" && metrics != "prometheus" {
		return nil, fmt.Errorf("%w: %s", errUnknownExporter, metrics)
	}
	return &runConfig{
		out:        cctx.App.Writer,
		errOut:     cctx.App.ErrWriter,
		keys:       cctx.IntSlice("keys"),
		deletes:    cctx.IntSlice("delete"),
		order:      order,
		render:     render,
		metrics:    metrics,
		logLevel:   cctx.String("log-level"),
		logFile:    strings.TrimSpace(cctx.String("log-file")),
		arenaCap:   uint32(cctx.Uint("arena-cap")),
		arenaSlabs: uint32(cctx.Uint("arena-slabs")),
		desc:       cctx.Bool("desc"),
		succ:       cctx.Bool("succ"),
	}, nil
}

func newRunLogger(lc fx.Lifecycle, cfg *runConfig) xlog.XLogger {
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerWriteSyncer(zapcore.AddSync(cfg.errOut)),
		xlog.WithXLoggerEncoder(xlog.PlainText),
		xlog.WithXLoggerLevelName(cfg.logLevel),
	}
	if len(cfg.logFile) > 0 {
		opts = append(opts,
			xlog.WithXLoggerFile(cfg.logFile),
			xlog.WithXLoggerEncoder(xlog.JSON),
		)
	}
	logger := xlog.NewXLogger(opts...)
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger
}

// metricsDumper flushes the tree metrics into the output on stop.
type metricsDumper struct {
	enabled bool
}

func newMetricsDumper(lc fx.Lifecycle, cfg *runConfig, logger xlog.XLogger) (*metricsDumper, error) {
	var stop func(ctx context.Context) error
	switch cfg.metrics {
	case "console":
		shutdown, err := observability.NewConsoleMetricsExporter(cfg.out, time.Minute)
		if err != nil {
			return nil, err
		}
		stop = shutdown
	case "prometheus":
		pm, err := observability.NewPrometheusMetricsExporter()
		if err != nil {
			return nil, err
		}
		stop = func(ctx context.Context) error {
			defer func() {
				_ = pm.Shutdown(ctx)
			}()
			return pm.WriteTo(cfg.out)
		}
	default:
		return &metricsDumper{}, nil
	}

	if err := observability.StartAppStats("cli"); err != nil {
		logger.Warn("runtime stats disabled", zap.Error(err))
	}
	lc.Append(fx.Hook{OnStop: stop})
	return &metricsDumper{enabled: true}, nil
}

// newRunTree waits for the metrics exporter, the tree stats are bound
// to the global meter provider on creation.
func newRunTree(lc fx.Lifecycle, cfg *runConfig, logger xlog.XLogger, dumper *metricsDumper) tree.BSTree[intKey] {
	opts := []tree.BSTreeOpt[intKey]{
		tree.WithBSTreeLogger[intKey](logger),
	}
	if cfg.desc {
		opts = append(opts, tree.WithBSTreeDesc[intKey]())
	}
	if cfg.succ {
		opts = append(opts, tree.WithBSTreeRemoveBorrowSucc[intKey]())
	}
	if cfg.arenaCap > 0 {
		opts = append(opts, tree.WithBSTreeArenaAllocator[intKey](cfg.arenaCap, cfg.arenaSlabs))
	}
	if dumper.enabled {
		opts = append(opts, tree.WithBSTreeStats[intKey]("cli"))
	}
	bst := tree.NewBSTree[intKey](opts...)
	lc.Append(fx.StopHook(bst.Clear))
	return bst
}

func runTreeJob(cfg *runConfig, logger xlog.XLogger, bst tree.BSTree[intKey]) error {
	var err error
	for _, k := range cfg.keys {
		if err = bst.Insert(intKey{K: k}); err != nil {
			if errors.Is(err, tree.ErrBSTreeAllocFailed) {
				return err
			}
			logger.Warn("insert skipped", zap.Int("key", k), zap.Error(err))
		}
	}
	for _, k := range cfg.deletes {
		if err = bst.Delete(intKey{K: k}); err != nil {
			logger.Warn("delete skipped", zap.Int("key", k), zap.Error(err))
		}
	}
	if err = tree.Validate[intKey](bst); err != nil {
		return err
	}

	out := cfg.out
	keys := make([]string, 0, bst.Len())
	bst.Traverse(cfg.order, func(idx int64, node tree.BSTNode[intKey]) bool {
		keys = append(keys, node.Data().String())
		return true
	})
	_, _ = fmt.Fprintf(out, "len: %d\n%s: %s\n", bst.Len(), cfg.order, strings.Join(keys, " "))
	if root := bst.Root(); root != nil {
		_, _ = fmt.Fprintf(out, "min: %v, max: %v\n",
			bst.FindMin(root).Data(),
			bst.FindMax(root).Data(),
		)
	}

	switch cfg.render {
	case "ascii":
		if err = tree.Render[intKey](out, bst.Root()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
	case "treeprint":
		_, _ = fmt.Fprint(out, lo.Ternary(bst.Len() > 0, tree.Sprint[intKey](bst.Root()), "\n"))
	default:
	}
	return nil
}

func runTree(cctx *cli.Context) error {
	cfg, err := parseRunConfig(cctx)
	if err != nil {
		return err
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			newRunLogger,
			newMetricsDumper,
			newRunTree,
		),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Invoke(runTreeJob),
	)
	if err = app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}
