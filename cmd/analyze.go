/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/logging"
	"github.com/packagewjx/fct-analyzer/internal/output"
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/packagewjx/fct-analyzer/internal/server"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

// Analyze Flags
const (
	FlagOutputDir = "output-dir"
	FlagCsv       = "csv"
	FlagChart     = "chart"
	FlagFormat    = "format"
)

const (
	FormatTable = "table"
	FormatJson  = "json"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [inputDir]",
	Short: "提取目录下所有日志的FCT，按算法与负载求平均，输出CSV与对比图",
	Long: `读取目录下所有.txt日志，从以"Flow src"开头的行中提取fct数值，
根据文件名中的算法标识（如ecmp、conga）与负载（如load50）分组求平均FCT。
结果按算法与负载排序，输出到终端、CSV文件与折线图中。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := viper.GetString(FlagFormat)
		if format != FormatTable && format != FormatJson {
			return fmt.Errorf("不支持的输出格式%s", format)
		}

		config := loadPipelineConfig(cmd, args)
		driver, err := pipeline.NewDriver(&config, nil, logging.Logger().Named("pipeline"))
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		result, err := driver.Run(ctx)
		if err != nil {
			return errors.Wrap(err, "分析被中断")
		}

		if err := writeArtifacts(result); err != nil {
			return err
		}

		if format == FormatJson {
			err = output.WriteJSON(os.Stdout, result)
		} else {
			output.RenderTable(os.Stdout, result.Rows)
		}
		if err != nil {
			return err
		}

		return archiveResult(result)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addPipelineFlags(analyzeCmd)
	addDatabaseFlags(analyzeCmd)
	analyzeCmd.Flags().StringP(FlagOutputDir, "o", ".",
		"CSV与图表的输出目录")
	analyzeCmd.Flags().String(FlagCsv, output.DefaultCsvFile,
		"CSV文件名，为空则不输出。相对路径以输出目录为基准")
	analyzeCmd.Flags().String(FlagChart, output.DefaultChartFile,
		"图表文件名，格式由扩展名决定，为空则不输出。相对路径以输出目录为基准")
	analyzeCmd.Flags().StringP(FlagFormat, "f", FormatTable,
		"终端输出格式，可选table或json")
}

// 收到SIGINT或SIGTERM时取消的context，当前文件处理完后停止
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Logger().Warnf("收到信号%v，停止分析", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func resolveOutputPath(outputDir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(outputDir, name)
}

func writeArtifacts(result *pipeline.Result) error {
	if len(result.Rows) == 0 {
		logging.Logger().Warnf("没有找到有效的FCT数据，不输出CSV与图表")
		return nil
	}

	outputDir := viper.GetString(FlagOutputDir)
	csvPath := resolveOutputPath(outputDir, viper.GetString(FlagCsv))
	chartPath := resolveOutputPath(outputDir, viper.GetString(FlagChart))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.Wrap(err, "创建输出目录出错")
	}

	if csvPath != "" {
		file, err := os.Create(csvPath)
		if err != nil {
			return errors.Wrap(err, "创建CSV文件出错")
		}
		err = output.WriteCSV(file, result.Rows)
		_ = file.Close()
		if err != nil {
			return err
		}
		logging.Logger().Infof("结果已保存到%s", csvPath)
	}

	if chartPath != "" {
		if err := output.SaveChart(result.Rows, chartPath); err != nil {
			return err
		}
		logging.Logger().Infof("图表已保存到%s", chartPath)
	}
	return nil
}

func archiveResult(result *pipeline.Result) error {
	dbConfig := loadDatabaseConfig()
	if dbConfig.Host == "" {
		return nil
	}

	dao, err := server.NewDao(&dbConfig, logging.Logger().Named("dao"))
	if err != nil {
		return err
	}
	run := server.NewRun(result)
	if err := dao.SaveRun(run); err != nil {
		return err
	}
	logging.Logger().Infof("分析结果已保存到数据库，RunID为%d", run.Id)
	return nil
}
