package logger

import (
	"log"
	"os"
)

// Logger wraps a few log.Logger instances in private fields.
// They are accessible via their respective methods.
type Logger struct {
	debug   *log.Logger
	info    *log.Logger
	error   *log.Logger
	verbose bool
}

// NewLogger returns a reference to a Logger.
// By default debug and error go to os.Stderr, and info goes to os.Stdout
func NewLogger(verbose bool) *Logger {
	return &Logger{
		log.New(os.Stderr, "", 0),
		log.New(os.Stdout, "", 0),
		log.New(os.Stderr, "", 0),
		verbose,
	}
}

// Debug prints a formatted message to stderr only if verbose is set.
// Consider these messages useful for developers of the CLI.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		l.debug.Printf(format, args...)
	}
}

// Infoln prints all args to os.Stdout followed by a newline.
func (l *Logger) Infoln(args ...interface{}) {
	l.info.Println(args...)
}

// Infof prints a formatted message to stdout
func (l *Logger) Infof(format string, args ...interface{}) {
	l.info.Printf(format, args...)
}

// Error prints a message and the given error's message to os.Stderr
func (l *Logger) Error(msg string, err error) {
	if err != nil {
		l.error.Print(msg, err.Error())
	}
}
