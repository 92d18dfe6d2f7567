package experiment

import (
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"github.com/pkg/errors"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownAlgorithm = errors.New("文件名中没有已知的算法标识")
	ErrMissingLoad      = errors.New("文件名中没有load<数字>标识")
)

var loadPattern = regexp.MustCompile(`(?i)load(\d+)`)

// 文件名中的算法标识及其规范化名称
type AlgorithmToken struct {
	Token string
	Label string
}

// 默认支持的算法，按顺序匹配
var DefaultAlgorithms = []AlgorithmToken{
	{Token: "ecmp", Label: "ECMP"},
	{Token: "conga", Label: "CONGA"},
}

// 按注册顺序匹配算法标识，先匹配者优先
type Registry struct {
	tokens []AlgorithmToken
}

func NewRegistry(tokens ...AlgorithmToken) *Registry {
	r := &Registry{tokens: make([]AlgorithmToken, 0, len(tokens))}
	for _, token := range tokens {
		r.Register(token.Token, token.Label)
	}
	return r
}

// 默认算法之后按标识字典序追加extra中的算法
func NewDefaultRegistry(extra map[string]string) *Registry {
	r := NewRegistry(DefaultAlgorithms...)
	keys := make([]string, 0, len(extra))
	for token := range extra {
		keys = append(keys, token)
	}
	sort.Strings(keys)
	for _, token := range keys {
		r.Register(token, extra[token])
	}
	return r
}

// 注册一个算法标识。已经存在的标识只更新名称，不改变匹配顺序
func (r *Registry) Register(token, label string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	if label == "" {
		label = strings.ToUpper(token)
	}
	for i := range r.tokens {
		if r.tokens[i].Token == token {
			r.tokens[i].Label = label
			return
		}
	}
	r.tokens = append(r.tokens, AlgorithmToken{Token: token, Label: label})
}

func (r *Registry) Tokens() []AlgorithmToken {
	result := make([]AlgorithmToken, len(r.tokens))
	copy(result, r.tokens)
	return result
}

func (r *Registry) DetectAlgorithm(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, token := range r.tokens {
		if strings.Contains(lower, token.Token) {
			return token.Label, true
		}
	}
	return "", false
}

// 负载标识位于文件名末尾，其他标签中可能也含有load<数字>（如download10），因此取最后一个
func DetectLoad(name string) (int, bool) {
	matches := loadPattern.FindAllStringSubmatch(name, -1)
	if len(matches) == 0 {
		return 0, false
	}
	load, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0, false
	}
	return load, true
}

// 从文件名中解析实验参数。算法与负载都必须解析成功，只使用文件名部分，忽略目录
func (r *Registry) Parse(path string) (core.ExperimentKey, error) {
	name := filepath.Base(path)
	algorithm, ok := r.DetectAlgorithm(name)
	if !ok {
		return core.ExperimentKey{}, errors.Wrap(ErrUnknownAlgorithm, name)
	}
	load, ok := DetectLoad(name)
	if !ok {
		return core.ExperimentKey{}, errors.Wrap(ErrMissingLoad, name)
	}
	return core.ExperimentKey{
		Algorithm: algorithm,
		Load:      load,
	}, nil
}
