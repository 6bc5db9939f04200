package tools

import (
	"bytes"
	"io"
	"sync"
)

var pool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 10240))
	},
}

// ReadAll drains the reader through a pooled buffer and returns an
// independent copy of the data.
func ReadAll(r io.Reader) ([]byte, error) {
	buffer := pool.Get().(*bytes.Buffer)
	buffer.Reset()
	_, err := io.Copy(buffer, r)
	if err != nil {
		pool.Put(buffer)
		return []byte{}, err
	}
	b := append([]byte(nil), buffer.Bytes()...)
	pool.Put(buffer)

	return b, nil
}
