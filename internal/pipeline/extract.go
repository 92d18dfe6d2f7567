package pipeline

import (
	"context"
	"github.com/packagewjx/fct-analyzer/internal/datasource"
	"github.com/packagewjx/fct-analyzer/internal/utils"
	"github.com/pkg/errors"
)

type ExtractedFile struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Values int    `json:"values"`
	Misses int    `json:"misses"`
	Bytes  int64  `json:"bytes"` // 派生文件大小
}

// 为输入目录中的每个原始日志生成派生文件，每行一个FCT数值。
// 不要求文件名包含算法与负载，已经存在的派生文件会被覆盖
func (d *Driver) Extract(ctx context.Context) ([]ExtractedFile, Report, error) {
	report := Report{InputDir: d.config.InputDir}
	files, err := d.discover()
	if err != nil {
		d.logger.Errorf("扫描目录失败：%v", err)
		report.addIssue(Issue{File: d.config.InputDir, Kind: IssueIO, Reason: err.Error()})
		return []ExtractedFile{}, report, nil
	}
	report.FilesDiscovered = len(files)

	extracted := make([]ExtractedFile, 0, len(files))
	for _, f := range files {
		if datasource.IsDerivedFile(f) {
			report.DerivedIgnored++
			continue
		}
		if err := ctx.Err(); err != nil {
			return extracted, report, err
		}

		values, source, err := d.readFile(input{path: f})
		if err != nil {
			d.logger.Errorf("读取%s失败：%v", f, err)
			report.addIssue(Issue{File: f, Kind: IssueIO, Reason: err.Error()})
			continue
		}

		output := datasource.DerivedFileName(f)
		written, err := d.writeDerived(output, values)
		if err != nil {
			d.logger.Errorf("写入%s失败：%v", output, err)
			report.addIssue(Issue{File: output, Kind: IssueIO, Reason: err.Error()})
			continue
		}

		report.FilesProcessed++
		report.FlowLines += source.FlowLines()
		report.ExtractionMisses += source.Misses()
		report.Samples += len(values)
		extracted = append(extracted, ExtractedFile{
			Source: f,
			Output: output,
			Values: len(values),
			Misses: source.Misses(),
			Bytes:  written,
		})
		d.logger.Debugf("处理%s：提取了%d个FCT数值", f, len(values))
	}

	return extracted, report, nil
}

func (d *Driver) writeDerived(path string, values []float64) (int64, error) {
	fout, err := d.fs.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "创建派生文件出错")
	}
	counter := &utils.WriteCounter{Writer: fout}
	err = datasource.WriteDerived(counter, values)
	if closeErr := fout.Close(); err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, "关闭派生文件出错")
	}
	return counter.Count, err
}
