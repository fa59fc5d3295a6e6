package report

import "github.com/zgpcy/calltimer/internal/logger"

// Log emits one structured record per invocation
type Log struct {
	logger *logger.Logger
}

// NewLog creates a Log reporter
func NewLog(log *logger.Logger) *Log {
	return &Log{logger: log}
}

// Report implements Reporter
func (l *Log) Report(inv Invocation) {
	l.logger.Info("Function call finished",
		"function", inv.Name,
		"elapsed_seconds", inv.Elapsed().Seconds(),
		"started_at", inv.Start)
}
