package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xbst/lib/tree"
)

func runWithOutput(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(append([]string{"xbst"}, args...), out, errOut)
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	testcases := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "delete root borrow pred",
			args: []string{"run", "--keys", "5,3,8,1,4,7,9", "--delete", "5"},
			contains: []string{
				"len: 6\n",
				"in-order: 1 3 4 7 8 9\n",
				"min: 1, max: 9\n",
				"\n---4\n",
			},
		},
		{
			name: "delete root borrow succ",
			args: []string{"--succ", "run", "--keys", "5,3,8,1,4,7,9", "--delete", "5", "--order", "pre"},
			contains: []string{
				"pre-order: 7 3 1 4 8 9\n",
				"\n---7\n",
			},
		},
		{
			name: "desc post-order",
			args: []string{"--desc", "run", "--keys", "5,3,8", "--order", "post"},
			contains: []string{
				"post-order: 8 3 5\n",
				"min: 8, max: 3\n",
			},
		},
		{
			name: "treeprint arena",
			args: []string{"--arena-cap", "4", "run", "--keys", "5,3,8", "--render", "treeprint"},
			contains: []string{
				"5\n",
				"[L]  3",
				"[R]  8",
			},
		},
		{
			name: "delete all",
			args: []string{"run", "--keys", "5", "--delete", "5"},
			contains: []string{
				"len: 0\nin-order: \n",
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			out, _, err := runWithOutput(tt, tc.args...)
			require.NoError(tt, err)
			for _, c := range tc.contains {
				require.Contains(tt, out, c)
			}
		})
	}
}

func TestRun_SkippedOps(t *testing.T) {
	out, errOut, err := runWithOutput(t,
		"--log-level", "warn",
		"run", "--keys", "5,3,5", "--delete", "9",
	)
	require.NoError(t, err)
	require.Contains(t, out, "len: 2\n")
	require.Contains(t, errOut, "insert skipped")
	require.Contains(t, errOut, tree.ErrBSTreeDuplicateKey.Error())
	require.Contains(t, errOut, "delete skipped")
	require.Contains(t, errOut, tree.ErrBSTreeNotFound.Error())
}

func TestRun_Errors(t *testing.T) {
	_, _, err := runWithOutput(t, "run", "--keys", "1", "--order", "level")
	require.ErrorIs(t, err, errUnknownOrder)

	_, _, err = runWithOutput(t, "run", "--keys", "1", "--render", "svg")
	require.ErrorIs(t, err, errUnknownRender)

	_, _, err = runWithOutput(t, "--metrics", "statsd", "run", "--keys", "1")
	require.ErrorIs(t, err, errUnknownExporter)

	_, _, err = runWithOutput(t, "--arena-cap", "2", "--arena-slabs", "1", "run", "--keys", "1,2,3")
	require.ErrorIs(t, err, tree.ErrBSTreeAllocFailed)

	_, _, err = runWithOutput(t, "run")
	require.Error(t, err)
}

func TestRun_PrometheusMetrics(t *testing.T) {
	out, _, err := runWithOutput(t, "--metrics", "prometheus", "run", "--keys", "5,3,8,3", "--delete", "3")
	require.NoError(t, err)
	require.Contains(t, out, "bst_insert_count_total")
	require.Contains(t, out, "bst_delete_count_total")
	require.Contains(t, out, "bst_op_failed_count_total")
}

func TestRun_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbst.log")
	_, errOut, err := runWithOutput(t,
		"--log-level", "info", "--log-file", path,
		"run", "--keys", "1,1",
	)
	require.NoError(t, err)
	require.Empty(t, errOut)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"insert skipped"`)
}
