package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// 输入文件的选择方式
type SourceMode string

const (
	// 只读取原始日志，忽略派生文件
	SourceRaw = SourceMode("raw")
	// 只读取派生文件
	SourceDerived = SourceMode("derived")
	// 读取原始日志；派生文件仅在其原始日志不存在时读取
	SourceAuto = SourceMode("auto")
)

// 样本的分组方式
type GroupBy string

const (
	// 相同(算法, 负载)的文件合并样本后计算一个平均值
	GroupByKey = GroupBy("key")
	// 每个文件单独计算一个平均值
	GroupByFile = GroupBy("file")
)

const (
	DefaultInputDir = "."
	DefaultSource   = SourceAuto
	DefaultGroupBy  = GroupByKey
	DefaultWorkers  = 1
)

type Config struct {
	InputDir   string            // 日志所在目录，默认为当前目录
	Source     SourceMode        // 输入文件的选择方式
	GroupBy    GroupBy           // 样本分组方式
	Workers    int               // 并行读取文件的goroutine数量，1为顺序读取
	Algorithms map[string]string // 默认算法之外的算法标识，键为文件名中的标识，值为输出名称
}

func (c Config) String() string {
	marshal, _ := json.Marshal(c)
	return string(marshal)
}

func (c *Config) Complete() error {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}

	c.Source = SourceMode(strings.ToLower(string(c.Source)))
	switch c.Source {
	case "":
		c.Source = DefaultSource
	case SourceRaw, SourceDerived, SourceAuto:
	default:
		return fmt.Errorf("不支持的输入类型%s，可选值：raw, derived, auto", c.Source)
	}

	c.GroupBy = GroupBy(strings.ToLower(string(c.GroupBy)))
	switch c.GroupBy {
	case "":
		c.GroupBy = DefaultGroupBy
	case GroupByKey, GroupByFile:
	default:
		return fmt.Errorf("不支持的分组方式%s，可选值：key, file", c.GroupBy)
	}

	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	} else if c.Workers < 0 {
		return fmt.Errorf("并行数量不能为负数，现在为%d", c.Workers)
	}

	return nil
}
