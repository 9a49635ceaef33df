package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/juju/errors"
)

type LogLevel int

const (
	Verbose3 LogLevel = iota
	Verbose2
	Verbose1
	Info
	Warning
	Error
)

var levelNames = map[string]LogLevel{
	"error":    Error,
	"warning":  Warning,
	"info":     Info,
	"verbose1": Verbose1,
	"verbose2": Verbose2,
	"verbose3": Verbose3,
}

// ParseLevel parses the level as given to --loglevel.
func ParseLevel(s string) (LogLevel, error) {
	level, ok := levelNames[s]
	if !ok {
		return Info, errors.Errorf(
			"invalid log level %q, try error, warning, info, verbose1, verbose2 or verbose3", s,
		)
	}

	return level, nil
}

var output io.Writer = os.Stderr
var outputFile *os.File
var outputMtx sync.Mutex

// SetOutput makes all loggers write to w.
func SetOutput(w io.Writer) {
	outputMtx.Lock()
	defer outputMtx.Unlock()

	closeOutputFile()
	output = w
}

// OpenFile makes all loggers append to the file at path, creating it if
// needed.
func OpenFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Annotatef(err, "opening log file")
	}

	outputMtx.Lock()
	defer outputMtx.Unlock()

	closeOutputFile()
	output = f
	outputFile = f
	return nil
}

// Close closes the log file opened with OpenFile, if any, and switches back
// to stderr.
func Close() {
	outputMtx.Lock()
	defer outputMtx.Unlock()

	closeOutputFile()
	output = os.Stderr
}

func closeOutputFile() {
	if outputFile != nil {
		outputFile.Close()
		outputFile = nil
	}
}

// printf prints a formatted message, prefixed with the current time.
func printf(format string, a ...interface{}) {
	var sb strings.Builder

	sb.WriteString(time.Now().Format("2006-01-02T15:04:05.999"))
	sb.WriteString(": ")
	fmt.Fprintf(&sb, format, a...)
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}

	outputMtx.Lock()
	defer outputMtx.Unlock()

	io.WriteString(output, sb.String())
}

type Logger struct {
	minLevel LogLevel

	namespace string
}

func NewLogger(minLevel LogLevel) *Logger {
	return &Logger{
		minLevel: minLevel,
	}
}

func (l *Logger) thisOrDefault() *Logger {
	if l != nil {
		return l
	}

	return &Logger{
		minLevel: Info,
	}
}

func (l *Logger) WithNamespaceAppended(n string) *Logger {
	l = l.thisOrDefault()

	ns := l.namespace
	if ns != "" {
		ns += "/"
	}
	ns += n

	newLogger := *l
	newLogger.namespace = ns
	return &newLogger
}

func (l *Logger) Verbose3f(format string, a ...interface{}) {
	l.Printf(Verbose3, format, a...)
}

func (l *Logger) Verbose2f(format string, a ...interface{}) {
	l.Printf(Verbose2, format, a...)
}

func (l *Logger) Verbose1f(format string, a ...interface{}) {
	l.Printf(Verbose1, format, a...)
}

func (l *Logger) Infof(format string, a ...interface{}) {
	l.Printf(Info, format, a...)
}

func (l *Logger) Warnf(format string, a ...interface{}) {
	l.Printf(Warning, format, a...)
}

func (l *Logger) Errorf(format string, a ...interface{}) {
	l.Printf(Error, format, a...)
}

func (l *Logger) Printf(level LogLevel, format string, a ...interface{}) {
	l = l.thisOrDefault()

	if level < l.minLevel {
		return
	}

	if l.namespace != "" {
		printf("[%s] %s", l.namespace, fmt.Sprintf(format, a...))
	} else {
		printf("%s", fmt.Sprintf(format, a...))
	}
}
