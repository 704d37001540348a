// Package logging builds the console logger used for ctsreport's status lines.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger that writes "[LEVEL] message" lines to w with no
// timestamp and no color. Debug events are dropped unless debug is set.
func New(w io.Writer, debug bool) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			s, ok := i.(string)
			if !ok || s == "" {
				return "[LOG]"
			}
			return fmt.Sprintf("[%s]", strings.ToUpper(s))
		},
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(cw).Level(level)
}
