package cmd

import (
	"bytes"
	"sync"

	"github.com/spf13/viper"
)

// syncBuffer is a bytes.Buffer safe to write from the watch goroutine while
// the test reads it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func newTestViper() *viper.Viper {
	return viper.New()
}
