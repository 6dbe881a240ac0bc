// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"io"

	"github.com/valyala/bytebufferpool"
)

// Buffer defines the interface for a reusable byte buffer.
// It abstracts the [bytebufferpool.ByteBuffer] type to avoid direct dependencies.
type Buffer interface {
	io.Writer
	io.WriterTo
	io.ReaderFrom
	WriteString(s string) (int, error)
	WriteByte(c byte) error
	Bytes() []byte
	String() string
	Len() int
	Reset()
}

// Pool defines the interface for buffer pooling.
//
// Pool implementations must be safe for concurrent use by multiple goroutines.
type Pool interface {
	Get() Buffer
	Put(b Buffer)
}

// pool wraps [bytebufferpool.Pool] to implement Pool interface.
type pool struct{ p *bytebufferpool.Pool }

// Get returns a buffer from the pool.
func (p *pool) Get() Buffer { return p.p.Get() }

// Put resets b and returns it to the pool. Buffers not obtained from
// bytebufferpool are dropped.
func (p *pool) Put(b Buffer) {
	if buf, ok := b.(*bytebufferpool.ByteBuffer); ok {
		buf.Reset()
		p.p.Put(buf)
	}
}

// Default is the buffer pool shared by the provisioning code.
//
// Example usage:
//
//	buf := gc.Default.Get()
//	defer gc.Default.Put(buf)
//
//	buf.WriteString("[alt_names]\n")
//	out := buf.String()
var Default Pool = &pool{p: &bytebufferpool.Pool{}}

// With runs fn with a pooled buffer and returns a copy of the bytes it wrote.
// The buffer goes back to the pool before With returns, so the copy is the
// only thing the caller may keep.
func With(fn func(buf Buffer) error) ([]byte, error) {
	buf := Default.Get()
	defer Default.Put(buf)

	if err := fn(buf); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.Bytes()...), nil
}
