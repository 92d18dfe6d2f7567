package output

import (
	"github.com/montanaflynn/stats"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"io"
	"sort"
)

var ErrNoData = errors.New("没有可以绘制的数据")

const (
	ChartTitle  = "Average Flow Completion Time vs Load"
	ChartXLabel = "Load (%)"
	ChartYLabel = "Average Flow Completion Time (ms)"
)

const (
	DefaultChartWidth  = 10 * vg.Inch
	DefaultChartHeight = 6 * vg.Inch
)

// 每个算法一条折线，横轴为负载，纵轴为平均FCT，每个负载点带标记
func NewComparisonChart(rows []core.SummaryRow) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = ChartTitle
	p.X.Label.Text = ChartXLabel
	p.Y.Label.Text = ChartYLabel
	p.Add(plotter.NewGrid())

	algorithms, series, err := chartSeries(rows)
	if err != nil {
		return nil, err
	}

	for i, algorithm := range algorithms {
		line, points, err := plotter.NewLinePoints(series[algorithm])
		if err != nil {
			return nil, errors.Wrap(err, "创建"+algorithm+"的折线出错")
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		points.Radius = vg.Points(3)

		p.Add(line, points)
		p.Legend.Add(algorithm, line, points)
	}
	p.Legend.Top = true

	return p, nil
}

// 每个算法的折线数据点，按负载升序。按文件分组时同一负载可能有多行，取这些行的平均值作为该点
func chartSeries(rows []core.SummaryRow) ([]string, map[string]plotter.XYs, error) {
	sorted := make([]core.SummaryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Algorithm != sorted[j].Algorithm {
			return sorted[i].Algorithm < sorted[j].Algorithm
		}
		return sorted[i].Load < sorted[j].Load
	})

	algorithms := make([]string, 0)
	series := make(map[string]plotter.XYs)
	for start := 0; start < len(sorted); {
		end := start
		ys := make([]float64, 0, 1)
		for end < len(sorted) && sorted[end].Algorithm == sorted[start].Algorithm && sorted[end].Load == sorted[start].Load {
			ys = append(ys, sorted[end].AverageFct)
			end++
		}
		y, err := stats.Mean(ys)
		if err != nil {
			return nil, nil, errors.Wrap(err, "计算图表数据点出错")
		}

		algorithm := sorted[start].Algorithm
		pts, ok := series[algorithm]
		if !ok {
			algorithms = append(algorithms, algorithm)
		}
		series[algorithm] = append(pts, plotter.XY{X: float64(sorted[start].Load), Y: y})
		start = end
	}
	return algorithms, series, nil
}

// 保存图表，格式由文件扩展名决定
func SaveChart(rows []core.SummaryRow, path string) error {
	p, err := NewComparisonChart(rows)
	if err != nil {
		return err
	}
	return errors.Wrap(p.Save(DefaultChartWidth, DefaultChartHeight, path), "保存图表出错")
}

// 以指定格式（png, svg, pdf等）输出图表
func WriteChart(out io.Writer, rows []core.SummaryRow, format string) error {
	p, err := NewComparisonChart(rows)
	if err != nil {
		return err
	}
	writerTo, err := p.WriterTo(DefaultChartWidth, DefaultChartHeight, format)
	if err != nil {
		return errors.Wrap(err, "创建图表输出出错")
	}
	_, err = writerTo.WriteTo(out)
	return errors.Wrap(err, "输出图表出错")
}
