// Package utils provides internal utility functions for the schedule service.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Wall-clock ("HH:MM") parsing and comparison
//   - Conversions between schedule time strings and Unix seconds
//   - The quick-connection transfer check
package utils
