package flowlog

import (
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestIsFlowCompletionLine(t *testing.T) {
	assert.True(t, IsFlowCompletionLine("Flow src 1 dst 2 size 100000 fct 12.5 start 0.1"))
	assert.True(t, IsFlowCompletionLine("Flow src"))

	// 前缀必须完全一致
	assert.False(t, IsFlowCompletionLine(" Flow src 1 fct 5"))
	assert.False(t, IsFlowCompletionLine("flow src 1 fct 5"))
	assert.False(t, IsFlowCompletionLine("the fct 5 of this flow"))
	assert.False(t, IsFlowCompletionLine(""))
}

func TestExtractFct(t *testing.T) {
	fct, ok := ExtractFct("Flow src 3 dst 7 fct 12.5 size 100")
	assert.True(t, ok)
	assert.Equal(t, 12.5, fct)

	fct, ok = ExtractFct("Flow src 3 dst 7 fct 5")
	assert.True(t, ok)
	assert.Equal(t, 5.0, fct)

	fct, ok = ExtractFct("Flow src 3 fct 5. done")
	assert.True(t, ok)
	assert.Equal(t, 5.0, fct)

	// 只取fct后的第一个数字
	fct, ok = ExtractFct("Flow src 3 fct 7.25 8.5 fct 9")
	assert.True(t, ok)
	assert.Equal(t, 7.25, fct)

	fct, ok = ExtractFct("Flow src 3 fct\t0.001")
	assert.True(t, ok)
	assert.Equal(t, 0.001, fct)

	_, ok = ExtractFct("Flow src 3 dst 7 size 100")
	assert.False(t, ok)

	_, ok = ExtractFct("Flow src 3 fct -5")
	assert.False(t, ok)

	_, ok = ExtractFct("Flow src 3 fct abc")
	assert.False(t, ok)

	// 溢出为Inf的数值视为无效
	_, ok = ExtractFct("Flow src 3 fct 1" + strings.Repeat("0", 400))
	assert.False(t, ok)
}

func TestParseFct(t *testing.T) {
	f, ok := ParseFct("3.75")
	assert.True(t, ok)
	assert.Equal(t, 3.75, f)

	for _, s := range []string{"-1", "NaN", "Inf", "", "x"} {
		_, ok = ParseFct(s)
		assert.False(t, ok, s)
	}
}
