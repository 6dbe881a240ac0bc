// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Supported output formats for [New].
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Log levels carried by [JSONLogger] entries.
const (
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
type Logger interface {
	// Printf formats and prints an uncoloured informational message.
	Printf(format string, v ...any)
	// Println prints an uncoloured informational message with a newline.
	Println(v ...any)
	// Infof formats and prints an informational status line.
	Infof(format string, v ...any)
	// Warnf formats and prints a warning status line.
	Warnf(format string, v ...any)
	// Errorf formats and prints an error status line.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// New returns the logger for format writing to w. Unknown formats fall back to text.
func New(format string, w io.Writer, slug string, silent bool) Logger {
	if format == FormatJSON {
		return NewJSONLogger(w, slug, silent)
	}

	l := NewCLILogger(slug, silent)
	if w != nil {
		l.SetOutput(w)
	}
	return l
}

// sprintln formats v like fmt.Println without the trailing newline.
func sprintln(v ...any) string { return strings.TrimSuffix(fmt.Sprintln(v...), "\n") }

// CLILogger implements Logger using the standard log package and [fatih/color].
// Every line starts with the configured slug, e.g. "[local-ssl-server] Created p12".
//
// [fatih/color]: https://github.com/fatih/color
type CLILogger struct {
	logger *log.Logger
	slug   string
	silent bool

	info *color.Color
	warn *color.Color
	err  *color.Color
}

// NewCLILogger creates a new CLI logger writing to stdout with timestamps disabled.
func NewCLILogger(slug string, silent bool) *CLILogger {
	return &CLILogger{
		logger: log.New(os.Stdout, "", 0),
		slug:   slug,
		silent: silent,
		info:   color.New(color.FgCyan),
		warn:   color.New(color.FgYellow),
		err:    color.New(color.FgRed),
	}
}

// SetColor forces colour on or off regardless of terminal detection.
func (c *CLILogger) SetColor(enabled bool) {
	for _, col := range []*color.Color{c.info, c.warn, c.err} {
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
}

func (c *CLILogger) line(msg string) string {
	if c.slug == "" {
		return msg
	}
	return c.slug + " " + msg
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) {
	if c.silent {
		return
	}
	c.logger.Print(c.line(fmt.Sprintf(format, v...)))
}

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) {
	if c.silent {
		return
	}
	c.logger.Print(c.line(sprintln(v...)))
}

// Infof prints a cyan informational line.
func (c *CLILogger) Infof(format string, v ...any) { c.colored(c.info, format, v...) }

// Warnf prints a yellow warning line.
func (c *CLILogger) Warnf(format string, v ...any) { c.colored(c.warn, format, v...) }

// Errorf prints a red error line.
func (c *CLILogger) Errorf(format string, v ...any) { c.colored(c.err, format, v...) }

func (c *CLILogger) colored(col *color.Color, format string, v ...any) {
	if c.silent {
		return
	}
	c.logger.Print(col.Sprint(c.line(fmt.Sprintf(format, v...))))
}

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line.
// Output is suppressed entirely when silent is set.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	slug   string
	silent bool
}

type jsonEntry struct {
	Level   string `json:"level"`
	Slug    string `json:"slug,omitempty"`
	Message string `json:"message"`
}

// NewJSONLogger creates a new JSON logger. A nil writer discards output.
func NewJSONLogger(writer io.Writer, slug string, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		slug:   slug,
		silent: silent,
	}
}

func (j *JSONLogger) write(level, msg string) {
	if j.silent {
		return
	}

	data, _ := json.Marshal(jsonEntry{Level: level, Slug: j.slug, Message: msg})

	j.mu.Lock()
	fmt.Fprintln(j.writer, string(data))
	j.mu.Unlock()
}

// Printf formats and logs an info-level message.
func (j *JSONLogger) Printf(format string, v ...any) { j.write(levelInfo, fmt.Sprintf(format, v...)) }

// Println logs an info-level message.
func (j *JSONLogger) Println(v ...any) { j.write(levelInfo, sprintln(v...)) }

// Infof formats and logs an info-level message.
func (j *JSONLogger) Infof(format string, v ...any) { j.write(levelInfo, fmt.Sprintf(format, v...)) }

// Warnf formats and logs a warn-level message.
func (j *JSONLogger) Warnf(format string, v ...any) { j.write(levelWarn, fmt.Sprintf(format, v...)) }

// Errorf formats and logs an error-level message.
func (j *JSONLogger) Errorf(format string, v ...any) {
	j.write(levelError, fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}
