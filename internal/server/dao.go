package server

import (
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
	"os"
)

const (
	DefaultMysqlUser     = "root"
	DefaultMysqlDatabase = "fct"
)

type DatabaseConfig struct {
	Host     string // host:port
	User     string
	Password string
	Database string
}

func (c *DatabaseConfig) Complete() {
	if c.User == "" {
		c.User = DefaultMysqlUser
	}
	if c.Database == "" {
		c.Database = DefaultMysqlDatabase
	}
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Database)
}

type Dao interface {
	SaveRun(run *Run) error
	QueryRun(id uint) (*Run, error)
	QueryLatestRun() (*Run, error)
}

type daoImpl struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

var _ Dao = &daoImpl{}

func NewDao(config *DatabaseConfig, l *zap.SugaredLogger) (Dao, error) {
	config.Complete()
	db, err := gorm.Open(mysql.Open(config.DSN()), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: logger.Silent,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库错误")
	}

	err = db.AutoMigrate(&RunDO{}, &SummaryRowDO{})
	if err != nil {
		return nil, errors.Wrap(err, "创建表格时出现异常")
	}

	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &daoImpl{
		db:     db,
		logger: l,
	}, nil
}

func (d *daoImpl) SaveRun(run *Run) error {
	runDo := &RunDO{
		InputDir:         run.InputDir,
		FilesDiscovered:  run.Report.FilesDiscovered,
		FilesProcessed:   run.Report.FilesProcessed,
		FilesSkipped:     run.Report.FilesSkipped,
		FilesFailed:      run.Report.FilesFailed,
		FlowLines:        run.Report.FlowLines,
		Samples:          run.Report.Samples,
		ExtractionMisses: run.Report.ExtractionMisses,
		EmptyGroups:      run.Report.EmptyGroups,
	}

	d.logger.Debugf("正在保存目录%s的分析结果，共%d行", run.InputDir, len(run.Rows))

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(runDo).Error; err != nil {
			return errors.Wrap(err, "保存RunDO出错")
		}
		run.Id = runDo.ID
		run.CreatedAt = runDo.CreatedAt
		if len(run.Rows) == 0 {
			return nil
		}
		rowDos := make([]*SummaryRowDO, len(run.Rows))
		for i, row := range run.Rows {
			rowDos[i] = &SummaryRowDO{
				RunId:      runDo.ID,
				Algorithm:  row.Algorithm,
				Load:       row.Load,
				AverageFct: row.AverageFct,
				Samples:    row.Samples,
				Source:     row.Source,
			}
		}
		if err := tx.Create(rowDos).Error; err != nil {
			return errors.Wrap(err, fmt.Sprintf("保存RunID为%d的结果出错", runDo.ID))
		}
		return nil
	})
}

func (d *daoImpl) QueryRun(id uint) (*Run, error) {
	runDo := &RunDO{}
	err := d.db.First(runDo, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoRun
	} else if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询RunID为%d的记录出错", id))
	}
	return d.loadRun(runDo)
}

func (d *daoImpl) QueryLatestRun() (*Run, error) {
	runDo := &RunDO{}
	err := d.db.Order("id desc").First(runDo).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoRun
	} else if err != nil {
		return nil, errors.Wrap(err, "查询最近一次分析结果出错")
	}
	return d.loadRun(runDo)
}

func (d *daoImpl) loadRun(runDo *RunDO) (*Run, error) {
	rowDos := make([]*SummaryRowDO, 0)
	err := d.db.Where("run_id = ?", runDo.ID).Order("algorithm asc, load_percent asc, source asc").Find(&rowDos).Error
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("查询RunID为%d的结果出错", runDo.ID))
	}

	rows := make([]core.SummaryRow, len(rowDos))
	for i, do := range rowDos {
		rows[i] = core.SummaryRow{
			Algorithm:  do.Algorithm,
			Load:       do.Load,
			AverageFct: do.AverageFct,
			Samples:    do.Samples,
			Source:     do.Source,
		}
	}

	return &Run{
		Id:        runDo.ID,
		CreatedAt: runDo.CreatedAt,
		InputDir:  runDo.InputDir,
		Report: pipeline.Report{
			InputDir:         runDo.InputDir,
			FilesDiscovered:  runDo.FilesDiscovered,
			FilesProcessed:   runDo.FilesProcessed,
			FilesSkipped:     runDo.FilesSkipped,
			FilesFailed:      runDo.FilesFailed,
			FlowLines:        runDo.FlowLines,
			Samples:          runDo.Samples,
			ExtractionMisses: runDo.ExtractionMisses,
			EmptyGroups:      runDo.EmptyGroups,
		},
		Rows: rows,
	}, nil
}
