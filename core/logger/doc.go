// Package logger is a standardized event logging framework for the simulated
// device. Events are written as newline delimited protobuf JSON.
package logger
