package datasource

import (
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
)

var ErrInvalidEncoding = errors.New("文件内容不是有效的UTF-8编码")

type FlowDataSource interface {
	// 读取一条流完成记录。若读取完毕，则error设置为io.EOF。error为其他时表示读取出错
	Load() (*core.FlowRecord, error)
	// 被识别为记录但无法提取数值的行数
	Misses() int
	// 被识别为记录的行数，包含Misses
	FlowLines() int
}
