package flowlog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 流完成记录行的前缀，区分大小写，不允许前导空白
const FlowLinePrefix = "Flow src"

var fctPattern = regexp.MustCompile(`fct\s+(\d+\.?\d*)`)

func IsFlowCompletionLine(line string) bool {
	return strings.HasPrefix(line, FlowLinePrefix)
}

// 从行中提取fct后的第一个十进制数。没有匹配或数值无效时返回false
func ExtractFct(line string) (float64, bool) {
	subMatch := fctPattern.FindStringSubmatch(line)
	if subMatch == nil {
		return 0, false
	}
	return ParseFct(subMatch[1])
}

// 解析单个FCT数值，要求有限且非负
func ParseFct(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
