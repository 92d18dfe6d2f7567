package server

import (
	"gorm.io/gorm"
)

type RunDO struct {
	gorm.Model
	InputDir         string `gorm:"type:VARCHAR(1024)"`
	FilesDiscovered  int
	FilesProcessed   int
	FilesSkipped     int
	FilesFailed      int
	FlowLines        int
	Samples          int
	ExtractionMisses int
	EmptyGroups      int
}

type SummaryRowDO struct {
	gorm.Model
	RunId      uint   `gorm:"index"`
	Algorithm  string `gorm:"type:VARCHAR(64)"`
	Load       int    `gorm:"column:load_percent"`
	AverageFct float64
	Samples    int
	Source     string `gorm:"type:VARCHAR(256)"`
}
