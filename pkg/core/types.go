package core

// 一条流完成记录。Fct必须是有限且非负的数
type FlowRecord struct {
	Fct float64
}

// 从文件名中解析得到的实验参数
type ExperimentKey struct {
	Algorithm string `json:"algorithm"`
	Load      int    `json:"load"`
	// 按文件分组时为文件名，按(算法, 负载)合并时为空
	Source string `json:"source,omitempty"`
}

type SummaryRow struct {
	Algorithm  string  `json:"algorithm"`
	Load       int     `json:"load"`
	AverageFct float64 `json:"averageFct"`
	Samples    int     `json:"samples"`
	Source     string  `json:"source,omitempty"`
}

func (r SummaryRow) Key() ExperimentKey {
	return ExperimentKey{
		Algorithm: r.Algorithm,
		Load:      r.Load,
		Source:    r.Source,
	}
}

const LineBreak = '\n'

const Splitter = ","

// 原始日志与派生文件的扩展名
const LogExt = ".txt"

// 派生文件在扩展名前添加的后缀
const DerivedSuffix = "_fct"
