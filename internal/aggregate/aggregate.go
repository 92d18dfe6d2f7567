package aggregate

import (
	"github.com/montanaflynn/stats"
	"github.com/packagewjx/fct-analyzer/pkg/core"
	"sort"
)

// 每个实验参数对应的样本，样本按出现顺序保存
type Samples map[core.ExperimentKey][]float64

func NewSamples() Samples {
	return make(Samples)
}

// 追加样本。即使values为空，key也会被记录，以便统计空分组
func (s Samples) Add(key core.ExperimentKey, values ...float64) {
	current, ok := s[key]
	if !ok {
		current = make([]float64, 0, len(values))
	}
	s[key] = append(current, values...)
}

// 将other中的样本按key拼接到s中
func (s Samples) Merge(other Samples) {
	for key, values := range other {
		s.Add(key, values...)
	}
}

// 没有任何样本的key，按输出顺序排列
func (s Samples) EmptyKeys() []core.ExperimentKey {
	result := make([]core.ExperimentKey, 0)
	for key, values := range s {
		if len(values) == 0 {
			result = append(result, key)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return keyLess(result[i], result[j])
	})
	return result
}

// 计算每个key的FCT平均值。没有样本的key不会输出，结果按(算法, 负载, 来源)升序排列
func Aggregate(samples Samples) []core.SummaryRow {
	rows := make([]core.SummaryRow, 0, len(samples))
	for key, values := range samples {
		mean, err := stats.Mean(values)
		if err != nil {
			// 只有空输入会出错
			continue
		}
		rows = append(rows, core.SummaryRow{
			Algorithm:  key.Algorithm,
			Load:       key.Load,
			AverageFct: mean,
			Samples:    len(values),
			Source:     key.Source,
		})
	}
	SortRows(rows)
	return rows
}

func SortRows(rows []core.SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		return keyLess(rows[i].Key(), rows[j].Key())
	})
}

func keyLess(a, b core.ExperimentKey) bool {
	if a.Algorithm != b.Algorithm {
		return a.Algorithm < b.Algorithm
	}
	if a.Load != b.Load {
		return a.Load < b.Load
	}
	return a.Source < b.Source
}
