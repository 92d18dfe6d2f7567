package cmd

import (
	"github.com/packagewjx/fct-analyzer/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestCommand(t *testing.T, flags ...string) *cobra.Command {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{Use: "test"}
	addPipelineFlags(cmd)
	require.NoError(t, cmd.ParseFlags(flags))
	require.NoError(t, viper.BindPFlags(cmd.Flags()))
	return cmd
}

func TestLoadPipelineConfig(t *testing.T) {
	cases := []struct {
		name       string
		flags      []string
		args       []string
		configFile map[string]interface{}
		expect     pipeline.Config
	}{
		{
			name: "默认值",
			expect: pipeline.Config{
				InputDir:   pipeline.DefaultInputDir,
				Source:     pipeline.DefaultSource,
				GroupBy:    pipeline.DefaultGroupBy,
				Workers:    pipeline.DefaultWorkers,
				Algorithms: map[string]string{},
			},
		},
		{
			name:  "参数优先于flag",
			flags: []string{"--input-dir", "/flag", "--source", "raw", "-w", "4"},
			args:  []string{"/arg"},
			expect: pipeline.Config{
				InputDir:   "/arg",
				Source:     pipeline.SourceRaw,
				GroupBy:    pipeline.DefaultGroupBy,
				Workers:    4,
				Algorithms: map[string]string{},
			},
		},
		{
			name:  "flag覆盖配置文件中的算法",
			flags: []string{"--algorithm", "letflow=LetFlow,hula=HULA", "--group-by", "file"},
			configFile: map[string]interface{}{
				"letflow": "LF",
				"drill":   "DRILL",
			},
			expect: pipeline.Config{
				InputDir: pipeline.DefaultInputDir,
				Source:   pipeline.DefaultSource,
				GroupBy:  pipeline.GroupByFile,
				Workers:  pipeline.DefaultWorkers,
				Algorithms: map[string]string{
					"letflow": "LetFlow",
					"hula":    "HULA",
					"drill":   "DRILL",
				},
			},
		},
	}

	for _, c := range cases {
		cmd := newTestCommand(t, c.flags...)
		if c.configFile != nil {
			viper.Set(ConfigAlgorithms, c.configFile)
		}
		assert.Equal(t, c.expect, loadPipelineConfig(cmd, c.args), c.name)
	}
}

func TestResolveOutputPath(t *testing.T) {
	cases := []struct {
		outputDir string
		name      string
		expect    string
	}{
		{".", "fct_results.csv", "fct_results.csv"},
		{"out", "fct_results.csv", "out/fct_results.csv"},
		{"/tmp/out", "charts/fct.png", "/tmp/out/charts/fct.png"},
		{"/tmp/out", "/data/fct.png", "/data/fct.png"},
		{"/tmp/out", "", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.expect, resolveOutputPath(c.outputDir, c.name), "%s + %s", c.outputDir, c.name)
	}
}
