package pipeline

import (
	"context"
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/aggregate"
	"github.com/packagewjx/fct-analyzer/internal/datasource"
	"github.com/packagewjx/fct-analyzer/internal/experiment"
	"github.com/packagewjx/fct-analyzer/internal/utils"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"path/filepath"
	"sort"
	"sync"
)

type Driver struct {
	config   *Config
	fs       afero.Fs
	registry *experiment.Registry
	logger   *zap.SugaredLogger
}

func NewDriver(config *Config, fs afero.Fs, logger *zap.SugaredLogger) (*Driver, error) {
	if err := config.Complete(); err != nil {
		return nil, err
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Driver{
		config:   config,
		fs:       fs,
		registry: experiment.NewDefaultRegistry(config.Algorithms),
		logger:   logger,
	}, nil
}

func (d *Driver) Config() Config {
	return *d.config
}

type input struct {
	path    string
	derived bool
}

// 单个文件的统计结果，样本直接放入所在分片的Samples中
type fileResult struct {
	path      string
	samples   int
	flowLines int
	misses    int
	issue     *Issue
}

// 一个goroutine负责的一段连续的输入文件
type partition struct {
	inputs  []input
	results []*fileResult
	samples aggregate.Samples
}

// 依次处理分片中的文件，每个文件开始前检查ctx
func (d *Driver) processPartition(ctx context.Context, part *partition) error {
	for _, in := range part.inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		part.results = append(part.results, d.processFile(in, part.samples))
	}
	return nil
}

// 扫描输入目录，提取所有文件的FCT并按实验参数求平均。
// 单个文件的错误只会被记录，返回的error只在ctx被取消时不为nil，此时返回已处理部分的结果
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	report := Report{InputDir: d.config.InputDir}
	d.logger.Infof("开始分析目录%s，配置：%v", d.config.InputDir, d.config)
	d.logger.Debugf("识别的算法：%v", d.registry.Tokens())

	files, err := d.discover()
	if err != nil {
		d.logger.Errorf("扫描目录失败：%v", err)
		report.addIssue(Issue{File: d.config.InputDir, Kind: IssueIO, Reason: err.Error()})
		d.logSummary(&report)
		return &Result{Rows: []core.SummaryRow{}, Report: report}, nil
	}
	report.FilesDiscovered = len(files)

	inputs, ignored := d.selectInputs(files)
	report.DerivedIgnored = ignored

	partitions, runErr := d.processAll(ctx, inputs)

	samples := aggregate.NewSamples()
	processed := 0
	for _, part := range partitions {
		for _, r := range part.results {
			processed++
			if r.issue != nil {
				report.addIssue(*r.issue)
				continue
			}
			report.FilesProcessed++
			report.FlowLines += r.flowLines
			report.ExtractionMisses += r.misses
			report.Samples += r.samples
		}
		// 分片按发现顺序合并，每个key的样本顺序与顺序执行时一致
		samples.Merge(part.samples)
	}

	rows := aggregate.Aggregate(samples)
	for _, key := range samples.EmptyKeys() {
		d.logger.Warnf("算法%s负载%d没有有效的FCT数据，不输出结果", key.Algorithm, key.Load)
		report.EmptyGroups++
	}

	d.logSummary(&report)
	if runErr != nil {
		d.logger.Warnf("分析被中断，已处理%d个文件：%v", processed, runErr)
	}
	return &Result{Rows: rows, Report: report}, runErr
}

// 返回输入目录下所有的.txt文件，按名称排序
func (d *Driver) discover() ([]string, error) {
	exists, err := afero.DirExists(d.fs, d.config.InputDir)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("检查目录%s出错", d.config.InputDir))
	} else if !exists {
		return nil, fmt.Errorf("目录%s不存在", d.config.InputDir)
	}

	matches, err := afero.Glob(d.fs, filepath.Join(d.config.InputDir, "*"+core.LogExt))
	if err != nil {
		return nil, errors.Wrap(err, "查找日志文件出错")
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if isDir, _ := afero.IsDir(d.fs, match); isDir {
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)
	return files, nil
}

// 根据输入类型选择要读取的文件，返回选中的文件与被忽略的派生文件数
func (d *Driver) selectInputs(files []string) ([]input, int) {
	raw := make(map[string]struct{})
	for _, f := range files {
		if !datasource.IsDerivedFile(f) {
			raw[f] = struct{}{}
		}
	}

	inputs := make([]input, 0, len(files))
	ignored := 0
	for _, f := range files {
		derived := datasource.IsDerivedFile(f)
		switch d.config.Source {
		case SourceRaw:
			if derived {
				ignored++
				continue
			}
		case SourceDerived:
			if !derived {
				continue
			}
		default:
			if derived {
				if _, ok := raw[datasource.SourceFileName(f)]; ok {
					ignored++
					continue
				}
			}
		}
		inputs = append(inputs, input{path: f, derived: derived})
	}
	return inputs, ignored
}

// 处理所有文件。Workers大于1时把文件按顺序切分为连续的分片，每个goroutine处理一个分片，
// 返回的分片保持输入顺序。文件内部不会中断
func (d *Driver) processAll(ctx context.Context, inputs []input) ([]*partition, error) {
	numPart := d.config.Workers
	if numPart > len(inputs) {
		numPart = len(inputs)
	}
	if numPart < 1 {
		numPart = 1
	}

	partitions := make([]*partition, numPart)
	for i := 0; i < numPart; i++ {
		partitions[i] = &partition{
			inputs:  inputs[i*len(inputs)/numPart : (i+1)*len(inputs)/numPart],
			results: make([]*fileResult, 0),
			samples: aggregate.NewSamples(),
		}
	}

	if numPart == 1 {
		return partitions, d.processPartition(ctx, partitions[0])
	}

	errs := make([]error, numPart)
	wg := sync.WaitGroup{}
	for i := range partitions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = d.processPartition(ctx, partitions[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return partitions, err
		}
	}
	return partitions, nil
}

func (d *Driver) processFile(in input, samples aggregate.Samples) *fileResult {
	result := &fileResult{path: in.path}

	key, err := d.registry.Parse(in.path)
	if err != nil {
		d.logger.Debugf("跳过%s：%v", in.path, err)
		result.issue = &Issue{File: in.path, Kind: IssueFilename, Reason: err.Error()}
		return result
	}
	if d.config.GroupBy == GroupByFile {
		key.Source = filepath.Base(in.path)
	}

	values, source, err := d.readFile(in)
	if err != nil {
		d.logger.Errorf("读取%s失败：%v", in.path, err)
		result.issue = &Issue{File: in.path, Kind: IssueIO, Reason: err.Error()}
		return result
	}
	samples.Add(key, values...)
	result.samples = len(values)
	result.flowLines = source.FlowLines()
	result.misses = source.Misses()

	if result.misses > 0 {
		d.logger.Warnf("%s中有%d条流记录无法提取FCT", in.path, result.misses)
	}
	d.logger.Debugf("处理%s：算法%s，负载%d，提取了%d个FCT数值", in.path, key.Algorithm, key.Load, len(values))
	return result
}

func (d *Driver) readFile(in input) ([]float64, datasource.FlowDataSource, error) {
	file, err := d.fs.Open(in.path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "打开文件出错")
	}
	defer func() {
		_ = file.Close()
	}()

	counter := &utils.ReadCounter{Reader: file}
	var source datasource.FlowDataSource
	if in.derived {
		source = datasource.NewDerivedDataSource(counter)
	} else {
		source = datasource.NewRawLogDataSource(counter)
	}
	values, err := datasource.ReadAll(source)
	if err != nil {
		return nil, nil, err
	}
	d.logger.Debugf("读取%s共%d字节", in.path, counter.Count)
	return values, source, nil
}

func (d *Driver) logSummary(report *Report) {
	d.logger.Infof("分析完成：发现%d个文件，处理%d个，跳过%d个，读取失败%d个，忽略派生文件%d个",
		report.FilesDiscovered, report.FilesProcessed, report.FilesSkipped, report.FilesFailed, report.DerivedIgnored)
	d.logger.Infof("共%d条流记录，有效FCT %d个，无法提取%d条，空分组%d个",
		report.FlowLines, report.Samples, report.ExtractionMisses, report.EmptyGroups)
}
