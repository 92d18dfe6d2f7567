package utils

import "io"

// 统计读取的字节数
type ReadCounter struct {
	Count  int64
	Reader io.Reader
}

func (r *ReadCounter) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	r.Count += int64(n)
	return
}

// 统计写入的字节数
type WriteCounter struct {
	Writer io.Writer
	Count  int64
}

func (w *WriteCounter) Write(p []byte) (n int, err error) {
	n, err = w.Writer.Write(p)
	w.Count += int64(n)
	return
}
