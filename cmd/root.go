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
	"github.com/mitchellh/go-homedir"
	"github.com/packagewjx/fct-analyzer/internal/logging"
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/packagewjx/fct-analyzer/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"strings"
)

// Global Flags
const (
	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagDatetime = "datetime"
	FlagColors   = "colors"
)

// Pipeline Flags
const (
	FlagInputDir  = "input-dir"
	FlagSource    = "source"
	FlagGroupBy   = "group-by"
	FlagWorkers   = "workers"
	FlagAlgorithm = "algorithm"
)

// Database Flags
const (
	FlagMysqlHost     = "mysql-host"
	FlagMysqlUser     = "mysql-user"
	FlagMysqlPassword = "mysql-password"
	FlagMysqlDatabase = "mysql-database"
)

// 配置文件中额外算法标识的键
const ConfigAlgorithms = "algorithms"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fct-analyzer",
	Short: "从模拟器日志中提取流完成时间（FCT），按算法与负载统计平均值并绘图",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		logger, err := logging.Initialize(viper.GetBool(FlagDatetime), viper.GetBool(FlagDebug), viper.GetBool(FlagColors))
		if err != nil {
			return err
		}
		if viper.ConfigFileUsed() != "" {
			logger.Debugf("使用配置文件%s", viper.ConfigFileUsed())
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		_ = logging.Logger().Sync()
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, FlagConfig, "",
		"配置文件路径，默认为$HOME/.fct-analyzer.yaml")
	rootCmd.PersistentFlags().Bool(FlagDebug, false,
		"输出DEBUG级别日志")
	rootCmd.PersistentFlags().Bool(FlagDatetime, true,
		"日志中输出时间")
	rootCmd.PersistentFlags().Bool(FlagColors, false,
		"日志级别带颜色")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName(".fct-analyzer")
	}

	viper.SetEnvPrefix("FCT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			fmt.Printf("读取配置文件出错：%v\n", err)
		}
	}
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(FlagInputDir, "i", pipeline.DefaultInputDir,
		"日志所在目录。也可以通过第一个参数指定")
	cmd.Flags().StringP(FlagSource, "s", string(pipeline.DefaultSource),
		"输入文件类型。raw：只读取原始日志；derived：只读取_fct.txt派生文件；auto：原始日志不存在时读取其派生文件")
	cmd.Flags().StringP(FlagGroupBy, "g", string(pipeline.DefaultGroupBy),
		"分组方式。key：相同算法与负载的文件合并计算；file：每个文件单独计算")
	cmd.Flags().IntP(FlagWorkers, "w", pipeline.DefaultWorkers,
		"并行读取文件的数量")
	cmd.Flags().StringToStringP(FlagAlgorithm, "a", map[string]string{},
		"额外的算法标识，格式为token=名称，例如letflow=LetFlow。默认支持ecmp与conga")
}

func addDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().String(FlagMysqlHost, "",
		"保存结果的Mysql服务器主机端口，格式为：host:port。为空则不保存")
	cmd.Flags().String(FlagMysqlUser, server.DefaultMysqlUser,
		"Mysql用户名")
	cmd.Flags().String(FlagMysqlPassword, "",
		"Mysql密码")
	cmd.Flags().String(FlagMysqlDatabase, server.DefaultMysqlDatabase,
		"Mysql数据库名")
}

func loadPipelineConfig(cmd *cobra.Command, args []string) pipeline.Config {
	inputDir := viper.GetString(FlagInputDir)
	if len(args) > 0 {
		inputDir = args[0]
	}

	// 配置文件中的算法在前，命令行参数可以覆盖
	algorithms := make(map[string]string)
	for token, label := range viper.GetStringMapString(ConfigAlgorithms) {
		algorithms[token] = label
	}
	if flagAlgorithms, err := cmd.Flags().GetStringToString(FlagAlgorithm); err == nil {
		for token, label := range flagAlgorithms {
			algorithms[token] = label
		}
	}

	return pipeline.Config{
		InputDir:   inputDir,
		Source:     pipeline.SourceMode(viper.GetString(FlagSource)),
		GroupBy:    pipeline.GroupBy(viper.GetString(FlagGroupBy)),
		Workers:    viper.GetInt(FlagWorkers),
		Algorithms: algorithms,
	}
}

func loadDatabaseConfig() server.DatabaseConfig {
	return server.DatabaseConfig{
		Host:     viper.GetString(FlagMysqlHost),
		User:     viper.GetString(FlagMysqlUser),
		Password: viper.GetString(FlagMysqlPassword),
		Database: viper.GetString(FlagMysqlDatabase),
	}
}
