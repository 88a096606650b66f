// Package sizefmt renders byte counts for humans. The output is display
// only and must never feed back into size decisions, which compare raw
// byte counts.
package sizefmt

import "fmt"

const (
	kb = 1024
	mb = 1024 * kb
	gb = 1024 * mb
)

// Format returns a human-readable size with a unit label.
func Format(bytes uint64) string {
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d Bytes", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	}
}
