package datasource

import (
	"github.com/pkg/errors"
	"io"
)

// 读取datasource中的所有数值，保持出现顺序
func ReadAll(source FlowDataSource) ([]float64, error) {
	values := make([]float64, 0, 64)
	for {
		record, err := source.Load()
		if err == io.EOF {
			return values, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "读取流完成记录出现问题")
		}
		values = append(values, record.Fct)
	}
}
