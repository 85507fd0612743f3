package handler

import (
	"bytes"
	"sync"
)

// responseBufferSize covers a typical weekly record payload without growth.
const responseBufferSize = 1024

// bufferPool reuses bytes.Buffer instances across JSON response encodes.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
