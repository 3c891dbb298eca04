package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpenInputs(t *testing.T) {
	t.Run("DeliversReaders", func(t *testing.T) {
		dir := t.TempDir()
		fn := filepath.Join(dir, "doc.xml")
		if !assert.NoError(t, os.WriteFile(fn, []byte("<root/>"), 0644), "WriteFile succeeds") {
			return
		}

		inputCh, errCh := openInputs([]string{fn})
		var count int
		for in := range inputCh {
			count++
			if c, ok := in.(io.Closer); ok {
				c.Close()
			}
		}
		if !assert.Equal(t, 1, count, "one reader per file") {
			return
		}
		select {
		case err := <-errCh:
			t.Fatalf("unexpected error: %s", err)
		default:
		}
	})

	// An open failure must not block the producer: the reader channel
	// has to close so the consumer loop can finish and report the error.
	t.Run("OpenFailure", func(t *testing.T) {
		inputCh, errCh := openInputs([]string{filepath.Join(t.TempDir(), "missing.xml")})
		for range inputCh {
			t.Fatal("no readers expected")
		}
		select {
		case err := <-errCh:
			if !assert.Error(t, err, "open failure reported") {
				return
			}
		default:
			t.Fatal("open failure not reported")
		}
	})
}
