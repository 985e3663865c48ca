// Package exitcode defines process exit codes so operators and cron wrappers
// can distinguish failure classes without parsing logs.
package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	PipelineError   = 3
	DBConnError     = 4
	LoadError       = 5
	FetchError      = 6
)
