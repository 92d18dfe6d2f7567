package datasource

import (
	"bufio"
	"github.com/packagewjx/fct-analyzer/internal/flowlog"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// 创建一个读取派生文件的datasource。派生文件每行一个数值，空行忽略
func NewDerivedDataSource(reader io.Reader) FlowDataSource {
	return &derivedDataSource{lineReader: newLineReader(reader)}
}

type derivedDataSource struct {
	*lineReader
	flowLines int
	misses    int
}

func (d *derivedDataSource) Load() (*core.FlowRecord, error) {
	for {
		line, err := d.next()
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		d.flowLines++
		fct, ok := flowlog.ParseFct(line)
		if !ok {
			d.misses++
			continue
		}
		return &core.FlowRecord{Fct: fct}, nil
	}
}

func (d *derivedDataSource) Misses() int {
	return d.misses
}

func (d *derivedDataSource) FlowLines() int {
	return d.flowLines
}

// 派生文件名：在扩展名前加上_fct
func DerivedFileName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + core.DerivedSuffix + ext
}

func IsDerivedFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), core.DerivedSuffix+core.LogExt)
}

// 派生文件对应的原始日志文件名
func SourceFileName(derivedPath string) string {
	ext := filepath.Ext(derivedPath)
	return strings.TrimSuffix(strings.TrimSuffix(derivedPath, ext), core.DerivedSuffix) + ext
}

// 每行写入一个数值，使用最短的可精确还原的十进制表示
func WriteDerived(out io.Writer, values []float64) error {
	writer := bufio.NewWriter(out)
	for i, v := range values {
		_, err := writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		if err == nil {
			err = writer.WriteByte(core.LineBreak)
		}
		if err != nil {
			return errors.Wrapf(err, "写入第%d个数值出错", i)
		}
	}
	return errors.Wrap(writer.Flush(), "写入派生文件出错")
}
