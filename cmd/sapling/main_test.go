package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

func nologf(string, ...interface{}) {}

func TestPruningStrategy(t *testing.T) {
	split := []dataset.Tally{{Yes: 2}, {No: 2}}
	testCases := []struct {
		strategy string
		collapse bool
	}{
		{"chi-squared", false},
		{"default", false},
		{"chi-squared:0.95", false},
		{"chi-squared:0.99", true},
		{"none", false},
	}
	for _, tc := range testCases {
		t.Run(tc.strategy, func(t *testing.T) {
			p, err := pruningStrategy(tc.strategy)
			require.NoError(t, err)
			assert.Equal(t, tc.collapse, p.Prune(split))
		})
	}
	p, err := pruningStrategy("none")
	require.NoError(t, err)
	assert.False(t, p.Prune([]dataset.Tally{{Yes: 1}}))
}

func TestPruningStrategyErrors(t *testing.T) {
	for _, strategy := range []string{"", "minimum-information-gain:0.1", "chi-squared:", "chi-squared:high", "chi-squared:1", "chi-squared:0", "none:1"} {
		t.Run(strategy, func(t *testing.T) {
			_, err := pruningStrategy(strategy)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	root := &rootCmdConfig{}
	gcc := &growCmdConfig{rootCmdConfig: root, pruneStrategy: "chi-squared:0.9", format: "yaml"}
	require.NoError(t, gcc.Validate())
	assert.NotNil(t, gcc.pruner)

	gcc.format = "xml"
	assert.Error(t, gcc.Validate())
	gcc.format = "text"
	gcc.name = "weather"
	assert.Error(t, gcc.Validate())
	gcc.redisAddr = "localhost:6379"
	assert.NoError(t, gcc.Validate())

	cvcc := &crossValidateCmdConfig{rootCmdConfig: root, pruneStrategy: "none", format: "json", workers: 0}
	assert.Error(t, cvcc.Validate())
	cvcc.workers = 4
	assert.NoError(t, cvcc.Validate())

	tcc := &testCmdConfig{rootCmdConfig: root, format: "text"}
	assert.Error(t, tcc.Validate())
	tcc.treeInput = "tree.json"
	assert.NoError(t, tcc.Validate())
	tcc.treeInputConfig.name = "weather"
	assert.Error(t, tcc.Validate())
	tcc.treeInput = ""
	assert.Error(t, tcc.Validate())
	tcc.treeInputConfig.redisAddr = "localhost:6379"
	assert.NoError(t, tcc.Validate())
}

func weatherTree(t *testing.T) (*dataset.Dataset, tree.Node) {
	ds, err := dataset.New([]string{"Weather", "Wind"}, []dataset.Row{
		{Values: []string{"sun", "weak"}, Label: dataset.Yes},
		{Values: []string{"sun", "strong"}, Label: dataset.Yes},
		{Values: []string{"rain", "weak"}, Label: dataset.No},
		{Values: []string{"rain", "strong"}, Label: dataset.No},
	})
	require.NoError(t, err)
	n, err := sapling.GrowAll(ds)
	require.NoError(t, err)
	return ds, n
}

func TestSaveAndLoadTree(t *testing.T) {
	dir, err := ioutil.TempDir("", "sapling")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "tree.json")
	ds, n := weatherTree(t)
	ctx := context.Background()

	toc := &treeOutputConfig{output: path}
	require.NoError(t, toc.saveTree(ctx, n, nologf))

	tic := &treeInputConfig{treeInput: path}
	loaded, err := tic.loadTree(ctx, nil, nologf)
	require.NoError(t, err)
	assert.Equal(t, tree.String(n), tree.String(loaded))

	// loading onto the registry of a test set with the columns swapped
	reg, err := feature.NewRegistry([]string{"Wind", "Weather"})
	require.NoError(t, err)
	loaded, err = tic.loadTree(ctx, reg, nologf)
	require.NoError(t, err)
	test, err := dataset.NewWithRegistry(reg, []dataset.Row{
		{Values: []string{"weak", "sun"}, Label: dataset.Yes},
		{Values: []string{"weak", "rain"}, Label: dataset.Yes},
	})
	require.NoError(t, err)
	result, err := tree.Evaluate(loaded, test.Rows())
	require.NoError(t, err)
	assert.Equal(t, tree.Report{Correct: 1, Incorrect: 1}, result)
	assert.Equal(t, 4, ds.Count())

	// a value the tree has no branch for cannot be classified
	unknown, err := dataset.NewWithRegistry(reg, []dataset.Row{
		{Values: []string{"weak", "snow"}, Label: dataset.Yes},
	})
	require.NoError(t, err)
	_, err = tree.Evaluate(loaded, unknown.Rows())
	assert.Error(t, err)

	_, err = (&treeInputConfig{treeInput: filepath.Join(dir, "missing.json")}).loadTree(ctx, nil, nologf)
	assert.Error(t, err)
}

func testReport() *report {
	return &report{
		Rows:              4,
		Grown:             &treeStats{Size: 3, Depth: 1},
		Training:          newAccuracy(tree.Report{Correct: 4}),
		LeaveOneOut:       newAccuracy(tree.Report{Correct: 3, Incorrect: 1}),
		PrunedLeaveOneOut: newAccuracy(tree.Report{Incorrect: 4}),
	}
}

func TestReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testReport().write(&buf, "text"))
	assert.Equal(t, `Rows: 4
Grown tree: 3 nodes, depth 1
Training accuracy (unpruned): 4 correct, 0 incorrect (100.00%)
Leave-one-out accuracy (unpruned): 3 correct, 1 incorrect (75.00%)
Leave-one-out accuracy (pruned): 0 correct, 4 incorrect (0.00%)
`, buf.String())
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testReport().write(&buf, "json"))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 4.0, decoded["rows"])
	assert.Equal(t, map[string]interface{}{"correct": 3.0, "incorrect": 1.0, "percentage": 75.0}, decoded["leaveOneOut"])
	assert.NotContains(t, decoded, "pruned")
	assert.NotContains(t, decoded, "test")
}

func TestReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testReport().write(&buf, "yaml"))
	decoded := &report{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), decoded))
	assert.Equal(t, testReport(), decoded)
}

func TestReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, testReport().write(&buf, "xml"))
	assert.Empty(t, buf.String())
}

func TestLogFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "sapling")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "sapling.log")

	rc := &rootCmdConfig{logFile: path}
	rc.Logf("Growing tree from a set with %d rows", 14)
	rc.Sync()

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Growing tree from a set with 14 rows", entry["msg"])
}

func TestNopLogger(t *testing.T) {
	rc := &rootCmdConfig{}
	assert.False(t, rc.Logger().Desugar().Core().Enabled(zapcore.ErrorLevel))
}
