package utils

import (
	"testing"
	"time"
)

func TestAnyToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"iPhone14,5", "iPhone14,5"},
		{uint64(17), "17"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
		{map[string]any{"nested": 1}, ""},
		{[]any{"a"}, ""},
	}
	for _, tt := range tests {
		if got := AnyToString(tt.in); got != tt.want {
			t.Errorf("AnyToString(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
