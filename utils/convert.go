package utils

import (
	"fmt"
	"time"
)

// AnyToString renders scalar values decoded from loosely typed sources.
// Containers and nil come back empty.
func AnyToString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return s.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(s)
	default:
		return ""
	}
}
