package filesystem

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatHumanSize renders a byte count with two decimals, dividing by 1024
// until the value drops below 1024 or the unit reaches PB.
func FormatHumanSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range sizeUnits {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", size)
}
