// Package format converts raw snapshot quantities into display strings.
package format

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats a byte count with binary prefixes, e.g. 1536 -> "1.5 KB".
// Plain bytes carry no decimal place; TB is the largest unit used.
func Bytes(bytes uint64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, byteUnits[unit])
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}

// Uptime formats seconds as "Xd Yh Zm", "Yh Zm" or "Zm". Only leading
// zero tiers are dropped: 1 day and 5 minutes is "1d 0h 5m".
func Uptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
