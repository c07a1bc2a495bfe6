package solver

import (
	"fmt"
	"io"

	"github.com/fourcolor/fourcolor/pkg/fourcolor"
)

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ fourcolor.Event) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(e fourcolor.Event) {
	fmt.Fprintf(t.Writer, "%s\n", e)
}
