package output

import (
	"github.com/olekukonko/tablewriter"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"io"
	"strconv"
)

// 以表格形式输出结果，比CSV多一列样本数
func RenderTable(out io.Writer, rows []core.SummaryRow) {
	table := tablewriter.NewWriter(out)
	header := append(Header(rows), "Samples")
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	records := Records(rows)
	for i, record := range records {
		table.Append(append(record, strconv.Itoa(rows[i].Samples)))
	}
	table.Render()
}
