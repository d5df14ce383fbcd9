package helper

import (
	"reflect"
	"testing"
)

func TestParseKeyValue(t *testing.T) {
	tests := []struct {
		line     string
		key, val string
		ok       bool
	}{
		{"DeviceName: Evidence Phone", "DeviceName", "Evidence Phone", true},
		{"ro.build.type=user", "ro.build.type", "user", true},
		{"WiFiAddress: aa:bb:cc", "WiFiAddress", "aa:bb:cc", true},
		{"key=a:b", "key", "a:b", true},
		{"Empty:", "Empty", "", true},
		{": no key", "", "", false},
		{"no separator", "", "", false},
	}
	for _, tt := range tests {
		key, val, ok := ParseKeyValue(tt.line)
		if key != tt.key || val != tt.val || ok != tt.ok {
			t.Errorf("ParseKeyValue(%q) = %q, %q, %v; want %q, %q, %v", tt.line, key, val, ok, tt.key, tt.val, tt.ok)
		}
	}
}

func TestFilterAllowed(t *testing.T) {
	fields := map[string]string{
		"DeviceName":   "Phone",
		"ProductType":  "",
		"SerialNumber": "XYZ",
	}
	got := FilterAllowed(fields, []string{"DeviceName", "ProductType"})
	want := map[string]string{"devicename": "Phone"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterAllowed() = %v, want %v", got, want)
	}
}

func TestParseInfoOutputFallsBackToLines(t *testing.T) {
	got := ParseInfoOutput("<?xml broken\nDeviceName: Phone\n")
	if got["DeviceName"] != "Phone" {
		t.Errorf("Expected line parsing after plist failure, got %v", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("  a \r\n\n\tb\n   \n")
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("SplitLines() = %q", got)
	}
}
