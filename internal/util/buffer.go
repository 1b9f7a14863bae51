package util

import (
	"bytes"
	"sync"
)

var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

// GetBytesBuffer returns an empty buffer from the pool.
func GetBytesBuffer() *bytes.Buffer {
	p := bytesBuffer.Get().(*bytes.Buffer)
	p.Reset()
	return p
}

func PutBytesBuffer(p *bytes.Buffer) {
	bytesBuffer.Put(p)
}
