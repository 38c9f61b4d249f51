// Package logs reads back the CLI's own log file for the logs command.
// It supports a bounded tail of the most recent lines and a polling wait
// for follow mode.
package logs
