package main

import (
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger prefixes every line with the worker name so the rotated
// log stays readable with five goroutines talking at once
type ThreadLogger struct {
	name string
}

func (t *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("["+t.name+"] "+format, v...)
}

func (t *ThreadLogger) Println(v ...interface{}) {
	args := append([]interface{}{"[" + t.name + "]"}, v...)
	log.Println(args...)
}

// setupLogging routes the stdlib logger through lumberjack for rotation.
// With toConsole (or no configured file) logging stays on stderr, which is
// what you want for tests and desktop runs.
func setupLogging(settings configSettings, toConsole bool) {
	logFile := settings.GetString(sLogFile)
	if toConsole || logFile == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	})
}
