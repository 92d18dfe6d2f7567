package experiment

import (
	"fmt"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRegistry_Parse(t *testing.T) {
	r := NewDefaultRegistry(nil)

	cases := map[string]core.ExperimentKey{
		"ecmp_50ms_100KB_load50.txt":         {Algorithm: "ECMP", Load: 50},
		"ecmp_50ms_100KB_load50_fct.txt":     {Algorithm: "ECMP", Load: 50},
		"conga_load30.txt":                   {Algorithm: "CONGA", Load: 30},
		"CONGA_10ms_LOAD90.txt":              {Algorithm: "CONGA", Load: 90},
		"/data/run1/Ecmp_tag_load0.txt":      {Algorithm: "ECMP", Load: 0},
		"conga_1ms_64KB_load100_extra_7.txt": {Algorithm: "CONGA", Load: 100},
		"ecmp_download10_load50.txt":         {Algorithm: "ECMP", Load: 50},
		"conga_overload5_load30_fct.txt":     {Algorithm: "CONGA", Load: 30},
	}
	for name, expect := range cases {
		key, err := r.Parse(name)
		assert.NoError(t, err, name)
		assert.Equal(t, expect, key, name)
	}
}

func TestRegistry_ParseFailure(t *testing.T) {
	r := NewDefaultRegistry(nil)

	_, err := r.Parse("random_notes.txt")
	assert.Equal(t, ErrUnknownAlgorithm, errors.Cause(err))

	// 只有算法没有负载
	_, err = r.Parse("ecmp_50ms_100KB.txt")
	assert.Equal(t, ErrMissingLoad, errors.Cause(err))

	// load与数字之间不能有分隔符
	_, err = r.Parse("ecmp_load_50.txt")
	assert.Equal(t, ErrMissingLoad, errors.Cause(err))

	// 只有负载没有算法
	_, err = r.Parse("dctcp_load50.txt")
	assert.Equal(t, ErrUnknownAlgorithm, errors.Cause(err))

	// 超出int范围
	_, err = r.Parse("ecmp_load99999999999999999999999.txt")
	assert.Equal(t, ErrMissingLoad, errors.Cause(err))

	// 目录名中的标识不参与匹配
	_, err = r.Parse("/data/ecmp_load50/notes.txt")
	assert.Error(t, err)
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	r := NewDefaultRegistry(nil)
	key, err := r.Parse("conga_vs_ecmp_load40.txt")
	assert.NoError(t, err)
	assert.Equal(t, "ECMP", key.Algorithm)
}

func TestNewDefaultRegistry_Extra(t *testing.T) {
	r := NewDefaultRegistry(map[string]string{
		"letflow": "LetFlow",
		"drill":   "",
		"ECMP":    "Ecmp-Hash",
	})

	tokens := r.Tokens()
	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, AlgorithmToken{Token: "ecmp", Label: "Ecmp-Hash"}, tokens[0])
	assert.Equal(t, AlgorithmToken{Token: "conga", Label: "CONGA"}, tokens[1])
	assert.Equal(t, AlgorithmToken{Token: "drill", Label: "DRILL"}, tokens[2])
	assert.Equal(t, AlgorithmToken{Token: "letflow", Label: "LetFlow"}, tokens[3])

	key, err := r.Parse("letflow_load70.txt")
	assert.NoError(t, err)
	assert.Equal(t, core.ExperimentKey{Algorithm: "LetFlow", Load: 70}, key)
}

func TestDetectLoad(t *testing.T) {
	for i := 0; i <= 100; i += 10 {
		load, ok := DetectLoad(fmt.Sprintf("x_load%d_y", i))
		assert.True(t, ok)
		assert.Equal(t, i, load)
	}
	load, ok := DetectLoad("load007")
	assert.True(t, ok)
	assert.Equal(t, 7, load)

	_, ok = DetectLoad("loadfifty")
	assert.False(t, ok)
}

func TestDetectLoad_LastToken(t *testing.T) {
	cases := []struct {
		name   string
		load   int
		detect bool
	}{
		{"ecmp_load50.txt", 50, true},
		{"ecmp_download10_load50.txt", 50, true},
		{"ecmp_load10_reload20_load70.txt", 70, true},
		{"ecmp_download10.txt", 10, true},
		{"ecmp_load.txt", 0, false},
	}
	for _, c := range cases {
		load, ok := DetectLoad(c.name)
		assert.Equal(t, c.detect, ok, c.name)
		assert.Equal(t, c.load, load, c.name)
	}
}
