package server

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/output"
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// 重新扫描输入目录并更新结果。同一时间只执行一次扫描
func (s *serverImpl) Rescan(ctx context.Context) (*pipeline.Result, error) {
	s.rescanLock.Lock()
	defer s.rescanLock.Unlock()

	result, err := s.driver.Run(ctx)
	if err != nil {
		return nil, err
	}

	s.resultLock.Lock()
	s.result = result
	s.resultLock.Unlock()

	if s.dao != nil {
		run := NewRun(result)
		if err := s.dao.SaveRun(run); err != nil {
			// 保存失败不影响本次结果
			s.logger.Errorf("保存分析结果失败：%v", err)
		} else {
			s.logger.Infof("分析结果已保存，RunID为%d", run.Id)
		}
	}

	return result, nil
}

// 最近一次扫描的结果，尚未扫描时返回nil
func (s *serverImpl) LatestResult() *pipeline.Result {
	s.resultLock.RLock()
	defer s.resultLock.RUnlock()
	return s.result
}

func (s *serverImpl) QueryAlgorithmRows(algorithm string) []core.SummaryRow {
	result := s.LatestResult()
	rows := make([]core.SummaryRow, 0)
	if result == nil {
		return rows
	}
	for _, row := range result.Rows {
		if strings.EqualFold(row.Algorithm, algorithm) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (s *serverImpl) buildServer() *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/results", func(writer http.ResponseWriter, request *http.Request) {
		result := s.LatestResult()
		if result == nil {
			http.NotFound(writer, request)
			return
		}
		writeJSON(writer, result)
	})

	mux.HandleFunc("/results.csv", func(writer http.ResponseWriter, request *http.Request) {
		result := s.LatestResult()
		if result == nil {
			http.NotFound(writer, request)
			return
		}
		writer.Header().Set("Content-Type", "text/csv")
		if err := output.WriteCSV(writer, result.Rows); err != nil {
			s.logger.Errorf("输出CSV出错：%v", err)
		}
	})

	mux.HandleFunc("/chart.png", func(writer http.ResponseWriter, request *http.Request) {
		result := s.LatestResult()
		if result == nil || len(result.Rows) == 0 {
			http.NotFound(writer, request)
			return
		}
		writer.Header().Set("Content-Type", "image/png")
		if err := output.WriteChart(writer, result.Rows, "png"); err != nil {
			s.logger.Errorf("输出图表出错：%v", err)
		}
	})

	const NamePattern = `[\w.-]+`
	algorithmPattern := regexp.MustCompile(fmt.Sprintf("^/algorithms/(%s)/results$", NamePattern))
	mux.HandleFunc("/algorithms/", func(writer http.ResponseWriter, request *http.Request) {
		subMatch := algorithmPattern.FindStringSubmatch(request.URL.Path)
		if subMatch == nil {
			http.NotFound(writer, request)
			return
		}
		rows := s.QueryAlgorithmRows(subMatch[1])
		if len(rows) == 0 {
			http.NotFound(writer, request)
			return
		}
		writeJSON(writer, rows)
	})

	mux.HandleFunc("/runs/latest", func(writer http.ResponseWriter, request *http.Request) {
		if s.dao == nil {
			http.Error(writer, "没有配置数据库", http.StatusNotImplemented)
			return
		}
		run, err := s.dao.QueryLatestRun()
		if errors.Cause(err) == ErrNoRun {
			http.NotFound(writer, request)
			return
		} else if err != nil {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(writer, run)
	})

	runPattern := regexp.MustCompile(`^/runs/(\d+)$`)
	mux.HandleFunc("/runs/", func(writer http.ResponseWriter, request *http.Request) {
		subMatch := runPattern.FindStringSubmatch(request.URL.Path)
		if subMatch == nil {
			http.NotFound(writer, request)
			return
		}
		if s.dao == nil {
			http.Error(writer, "没有配置数据库", http.StatusNotImplemented)
			return
		}
		id, err := strconv.ParseUint(subMatch[1], 10, 32)
		if err != nil {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}
		run, err := s.dao.QueryRun(uint(id))
		if errors.Cause(err) == ErrNoRun {
			http.NotFound(writer, request)
			return
		} else if err != nil {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(writer, run)
	})

	mux.HandleFunc("/rescan", func(writer http.ResponseWriter, request *http.Request) {
		if _, err := s.Rescan(request.Context()); err != nil {
			http.Error(writer, err.Error(), http.StatusServiceUnavailable)
			return
		}
		_, _ = writer.Write([]byte("OK"))
	})

	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: mux,
	}
}

func writeJSON(writer http.ResponseWriter, v interface{}) {
	marshal, err := json.Marshal(v)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	_, _ = writer.Write(marshal)
}
