package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var treeFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "desc",
		Usage: "keep the keys in the descending order",
	},
	&cli.BoolFlag{
		Name:  "succ",
		Usage: "borrow the in-order successor instead of the predecessor on delete",
	},
	&cli.UintFlag{
		Name:  "arena-cap",
		Usage: "allocate the nodes from the arena slabs of this capacity, zero means the go heap",
	},
	&cli.UintFlag{
		Name:  "arena-slabs",
		Usage: "max number of the arena slabs, zero means unlimited",
	},
	&cli.StringFlag{
		Name:  "metrics",
		Usage: "dump the tree metrics on exit, console or prometheus",
	},
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "debug, info, warn or error",
		Value:   "warn",
		EnvVars: []string{"XLOG_LVL"},
	},
	&cli.StringFlag{
		Name:  "log-file",
		Usage: "append the JSON logs into the file instead of the plain text stderr",
	},
}

func run(args []string, out, errOut io.Writer) error {
	app := cli.App{
		Name:      "xbst",
		Usage:     "unbalanced binary search tree playground",
		Flags:     treeFlags,
		Writer:    out,
		ErrWriter: errOut,
	}
	app.Commands = []*cli.Command{
		cmdRun,
	}
	return app.Run(args)
}
