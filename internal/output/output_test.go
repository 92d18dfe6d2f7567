package output

import (
	"bytes"
	"encoding/json"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/plot/plotter"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testRows = []core.SummaryRow{
	{Algorithm: "CONGA", Load: 30, AverageFct: 8.5, Samples: 4},
	{Algorithm: "CONGA", Load: 50, AverageFct: 10, Samples: 2},
	{Algorithm: "ECMP", Load: 30, AverageFct: 9.25, Samples: 3},
	{Algorithm: "ECMP", Load: 50, AverageFct: 15, Samples: 2},
}

func TestWriteCSV(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteCSV(builder, testRows)
	assert.NoError(t, err)
	assert.Equal(t, "Algorithm,Load,Average FCT\n"+
		"CONGA,30,8.5\n"+
		"CONGA,50,10\n"+
		"ECMP,30,9.25\n"+
		"ECMP,50,15\n", builder.String())
}

func TestWriteCSV_Source(t *testing.T) {
	builder := &strings.Builder{}
	err := WriteCSV(builder, []core.SummaryRow{
		{Algorithm: "ECMP", Load: 60, AverageFct: 1, Samples: 1, Source: "ecmp_1ms_load60.txt"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Algorithm,Load,Average FCT,Source\nECMP,60,1,ecmp_1ms_load60.txt\n", builder.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	builder := &strings.Builder{}
	assert.NoError(t, WriteCSV(builder, nil))
	assert.Equal(t, "Algorithm,Load,Average FCT\n", builder.String())
}

func TestRenderTable(t *testing.T) {
	builder := &strings.Builder{}
	RenderTable(builder, testRows)
	out := builder.String()
	assert.Contains(t, out, "Average FCT")
	assert.Contains(t, out, "Samples")
	assert.Contains(t, out, "CONGA")
	assert.Contains(t, out, "9.25")
	assert.True(t, strings.Index(out, "CONGA") < strings.Index(out, "ECMP"))
}

func TestWriteJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NoError(t, WriteJSON(buf, testRows))
	var rows []core.SummaryRow
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, testRows, rows)
}

func TestNewComparisonChart(t *testing.T) {
	p, err := NewComparisonChart(testRows)
	assert.NoError(t, err)
	assert.Equal(t, ChartTitle, p.Title.Text)
	assert.Equal(t, 30.0, p.X.Min)
	assert.Equal(t, 50.0, p.X.Max)

	_, err = NewComparisonChart(nil)
	assert.Equal(t, ErrNoData, err)
}

func TestWriteChart(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.NoError(t, WriteChart(buf, testRows, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.Error(t, WriteChart(buf, testRows, "unknown"))
}

func TestSaveChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultChartFile)
	assert.NoError(t, SaveChart(testRows, path))
	stat, err := os.Stat(path)
	assert.NoError(t, err)
	assert.True(t, stat.Size() > 0)
}

func TestChartSeries_PerFileRows(t *testing.T) {
	rows := []core.SummaryRow{
		{Algorithm: "ECMP", Load: 60, AverageFct: 3.5, Samples: 4, Source: "ecmp_10ms_load60.txt"},
		{Algorithm: "ECMP", Load: 30, AverageFct: 2, Samples: 1, Source: "ecmp_1ms_load30.txt"},
		{Algorithm: "ECMP", Load: 60, AverageFct: 1.5, Samples: 1, Source: "ecmp_1ms_load60.txt"},
		{Algorithm: "CONGA", Load: 60, AverageFct: 1, Samples: 1, Source: "conga_load60.txt"},
	}

	algorithms, series, err := chartSeries(rows)
	assert.NoError(t, err)
	assert.Equal(t, []string{"CONGA", "ECMP"}, algorithms)
	assert.Equal(t, plotter.XYs{{X: 60, Y: 1}}, series["CONGA"])
	// 同一负载只有一个点，取各文件平均值的平均
	assert.Equal(t, plotter.XYs{{X: 30, Y: 2}, {X: 60, Y: 2.5}}, series["ECMP"])
}
