// Package logging builds the structured logger shared by the session, the
// adapters and the OpenTelemetry SDK.
package logging

import (
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
)

// New returns a logr.Logger writing to w through the standard log package.
// Messages at V-levels above verbosity are dropped.
func New(w io.Writer, verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	return stdr.NewWithOptions(log.New(w, "", log.LstdFlags), stdr.Options{LogCaller: stdr.Error})
}

// Install makes l the logger used by the OpenTelemetry SDK, so exporter
// failures end up next to the game's own log lines.
func Install(l logr.Logger) {
	otel.SetLogger(l.WithName("otel"))
}
