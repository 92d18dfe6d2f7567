package pipeline

import (
	"github.com/packagewjx/fct-analyzer/pkg/core"
)

type IssueKind string

const (
	// 文件名中缺少算法或负载
	IssueFilename = IssueKind("filename")
	// 目录或文件无法读取，或内容不是有效编码
	IssueIO = IssueKind("io")
)

type Issue struct {
	File   string    `json:"file"`
	Kind   IssueKind `json:"kind"`
	Reason string    `json:"reason"`
}

// 一次运行的统计信息。所有问题都只计数，不会中断运行
type Report struct {
	InputDir         string  `json:"inputDir"`
	FilesDiscovered  int     `json:"filesDiscovered"`
	DerivedIgnored   int     `json:"derivedIgnored"`
	FilesProcessed   int     `json:"filesProcessed"`
	FilesSkipped     int     `json:"filesSkipped"`
	FilesFailed      int     `json:"filesFailed"`
	FlowLines        int     `json:"flowLines"`
	Samples          int     `json:"samples"`
	ExtractionMisses int     `json:"extractionMisses"`
	EmptyGroups      int     `json:"emptyGroups"`
	Issues           []Issue `json:"issues,omitempty"`
}

func (r *Report) addIssue(issue Issue) {
	switch issue.Kind {
	case IssueFilename:
		r.FilesSkipped++
	case IssueIO:
		r.FilesFailed++
	}
	r.Issues = append(r.Issues, issue)
}

type Result struct {
	Rows   []core.SummaryRow `json:"rows"`
	Report Report            `json:"report"`
}
