package datasource

import (
	"bufio"
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/flowlog"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"io"
	"strings"
	"unicode/utf8"
)

// 创建一个读取模拟器原始日志的datasource，只返回Flow src开头并带有fct数值的行
func NewRawLogDataSource(reader io.Reader) FlowDataSource {
	return &rawLogDataSource{lineReader: newLineReader(reader)}
}

type rawLogDataSource struct {
	*lineReader
	flowLines int
	misses    int
}

func (r *rawLogDataSource) Load() (*core.FlowRecord, error) {
	for {
		line, err := r.next()
		if err != nil {
			return nil, err
		}
		if !flowlog.IsFlowCompletionLine(line) {
			continue
		}
		r.flowLines++
		fct, ok := flowlog.ExtractFct(line)
		if !ok {
			r.misses++
			continue
		}
		return &core.FlowRecord{Fct: fct}, nil
	}
}

func (r *rawLogDataSource) Misses() int {
	return r.misses
}

func (r *rawLogDataSource) FlowLines() int {
	return r.flowLines
}

type lineReader struct {
	reader    *bufio.Reader
	lineCount int
}

func newLineReader(reader io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(reader)}
}

// 返回去掉换行符的下一行。最后一行没有换行符时也会返回
func (l *lineReader) next() (string, error) {
	line, err := l.reader.ReadString(core.LineBreak)
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", errors.Wrap(err, fmt.Sprintf("读取第%d行后出错", l.lineCount))
	}
	l.lineCount++
	if !utf8.ValidString(line) {
		return "", errors.Wrap(ErrInvalidEncoding, fmt.Sprintf("第%d行", l.lineCount))
	}
	return strings.TrimRight(line, "\r\n"), nil
}
