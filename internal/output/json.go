package output

import (
	"encoding/json"
	"github.com/pkg/errors"
	"io"
)

func WriteJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return errors.Wrap(err, "序列化结果出错")
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}
