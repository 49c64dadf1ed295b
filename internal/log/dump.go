package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ArtifactDumper records rendered artifacts for offline inspection.
type ArtifactDumper interface {
	Dump(name string, data []byte)
}

type artifactDumper struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewDumper creates an ArtifactDumper. If w is nil, the dumper is a no-op.
func NewDumper(w io.Writer) ArtifactDumper {
	return &artifactDumper{w: w, now: time.Now}
}

// Dump writes a header line followed by the artifact text.
func (d *artifactDumper) Dump(name string, data []byte) {
	if d.w == nil {
		return
	}

	header := fmt.Sprintf("%s ---- %s: %d bytes ----\n",
		d.now().Format("2006/01/02 15:04:05"),
		name,
		len(data))

	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = io.WriteString(d.w, header)
	_, _ = d.w.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, _ = io.WriteString(d.w, "\n")
	}
}
