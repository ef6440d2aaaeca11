package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers. A failing
// writer does not stop the others; its error is returned combined.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: append([]io.Writer(nil), writers...),
	}
}

// Write reports len(p) when every writer took the whole buffer, the
// shortest successful write otherwise.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	written := len(p)
	var err error
	for _, w := range cw.writers {
		n, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			written = min(written, n)
			continue
		}
		if n < written {
			written = n
			err = multierr.Append(err, io.ErrShortWrite)
		}
	}
	return written, err
}
