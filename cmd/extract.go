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
	"fmt"
	"github.com/packagewjx/fct-analyzer/internal/logging"
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [inputDir]",
	Short: "将目录下每个日志的FCT数值提取到对应的_fct.txt文件中",
	Long: `对目录下每个原始日志xxx.txt，提取所有流的FCT数值，每行一个写入xxx_fct.txt。
之后可以使用analyze --source derived直接读取这些文件。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := loadPipelineConfig(cmd, args)
		driver, err := pipeline.NewDriver(&config, nil, logging.Logger().Named("pipeline"))
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		files, report, err := driver.Extract(ctx)
		for _, f := range files {
			fmt.Printf("处理%s：提取了%d个FCT数值\n", f.Source, f.Values)
		}
		if err != nil {
			return errors.Wrap(err, "提取被中断")
		}
		if report.FilesFailed > 0 {
			return fmt.Errorf("有%d个文件处理失败", report.FilesFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	addPipelineFlags(extractCmd)
}
