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
	"github.com/packagewjx/fct-analyzer/internal/logging"
	"github.com/packagewjx/fct-analyzer/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const FlagPort = "port"

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务器，提供最近一次分析的结果与图表",
	Long: `启动时分析一次输入目录，之后可通过/rescan重新分析。
接口：/results、/results.csv、/chart.png、/algorithms/{name}/results、/runs/latest、/rescan、/healthz`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := &server.ServerConfig{
			Port:     uint16(viper.GetUint(FlagPort)),
			Pipeline: loadPipelineConfig(cmd, args),
			Database: loadDatabaseConfig(),
		}

		s, err := server.NewServer(config, nil, logging.Logger())
		if err != nil {
			return err
		}
		return s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addPipelineFlags(serveCmd)
	addDatabaseFlags(serveCmd)
	serveCmd.Flags().Uint16P(FlagPort, "p", server.DefaultPort,
		"服务器监听端口")
}
