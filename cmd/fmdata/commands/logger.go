package commands

import (
	"os"
	"sort"

	"github.com/fivetwenty-io/fmdata/pkg/fmdata"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
)

// hclogAdapter adapts hclog.Logger to fmdata.Logger.
type hclogAdapter struct {
	logger hclog.Logger
}

// NewLogger creates the CLI logger. Output goes to stderr so that command
// output on stdout stays machine readable.
func NewLogger() fmdata.Logger {
	level := hclog.Warn

	switch {
	case viper.GetBool("debug"):
		level = hclog.Debug
	case viper.GetBool("verbose"):
		level = hclog.Info
	}

	return &hclogAdapter{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "fmdata",
			Level:  level,
			Output: os.Stderr,
		}),
	}
}

// Debug logs debug messages.
func (a *hclogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, flatten(fields)...)
}

// Info logs info messages.
func (a *hclogAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, flatten(fields)...)
}

// Warn logs warning messages.
func (a *hclogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, flatten(fields)...)
}

// Error logs error messages.
func (a *hclogAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, flatten(fields)...)
}

// flatten turns a field map into hclog key/value pairs in key order.
func flatten(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
