package server

import (
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"time"
)

var ErrNoRun = errors.New("没有保存过分析结果")

// 一次已保存的分析结果
type Run struct {
	Id        uint              `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	InputDir  string            `json:"inputDir"`
	Report    pipeline.Report   `json:"report"`
	Rows      []core.SummaryRow `json:"rows"`
}

func NewRun(result *pipeline.Result) *Run {
	return &Run{
		InputDir: result.Report.InputDir,
		Report:   result.Report,
		Rows:     result.Rows,
	}
}
