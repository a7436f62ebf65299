package tool

import "log"

// ProgressSink receives side-channel notifications from tool executions.
// Implementations must be safe for use from a single tool call at a time.
type ProgressSink interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Progress(i, n int)
}

// LogSink writes all notifications to the standard logger.
type LogSink struct{}

func (LogSink) Info(msg string)  { log.Println("INFO:", msg) }
func (LogSink) Warn(msg string)  { log.Println("WARN:", msg) }
func (LogSink) Error(msg string) { log.Println("ERROR:", msg) }

func (LogSink) Progress(i, n int) { log.Printf("PROGRESS: %d/%d", i+1, n) }
