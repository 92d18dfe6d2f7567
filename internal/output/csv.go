package output

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"io"
	"strconv"
)

const (
	HeaderAlgorithm  = "Algorithm"
	HeaderLoad       = "Load"
	HeaderAverageFct = "Average FCT"
	HeaderSource     = "Source"
)

// 默认输出文件名
const (
	DefaultCsvFile   = "fct_results.csv"
	DefaultChartFile = "fct_comparison.png"
)

// 表头。只有存在按文件分组的行时才输出Source列
func Header(rows []core.SummaryRow) []string {
	header := []string{HeaderAlgorithm, HeaderLoad, HeaderAverageFct}
	if hasSource(rows) {
		header = append(header, HeaderSource)
	}
	return header
}

func Records(rows []core.SummaryRow) [][]string {
	withSource := hasSource(rows)
	records := make([][]string, len(rows))
	for i, row := range rows {
		record := []string{
			row.Algorithm,
			strconv.Itoa(row.Load),
			strconv.FormatFloat(row.AverageFct, 'f', -1, 64),
		}
		if withSource {
			record = append(record, row.Source)
		}
		records[i] = record
	}
	return records
}

// 按行的顺序写出CSV，rows应已排序
func WriteCSV(out io.Writer, rows []core.SummaryRow) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(Header(rows)); err != nil {
		return errors.Wrap(err, "写入表头出错")
	}
	for i, record := range Records(rows) {
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "写入CSV出错")
}

func hasSource(rows []core.SummaryRow) bool {
	for _, row := range rows {
		if row.Source != "" {
			return true
		}
	}
	return false
}
