package helper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"howett.net/plist"

	"github.com/spance/forensic-go/forensic/definitions"
	"github.com/spance/forensic-go/utils"
)

// SplitLines returns the trimmed, non-blank lines of output.
func SplitLines(output string) []string {
	lines := strings.Split(strings.ReplaceAll(output, "\r\n", "\n"), "\n")
	lines = lo.Map(lines, func(line string, _ int) string {
		return strings.TrimSpace(line)
	})
	return lo.Filter(lines, func(line string, _ int) bool {
		return line != ""
	})
}

// ParseKeyValue splits a "key: value" or "key=value" line at whichever
// separator comes first. ok is false for lines with neither, or an empty key.
func ParseKeyValue(line string) (key, value string, ok bool) {
	idx := strings.IndexAny(line, ":=")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// ParseKeyValueLines collects every key/value line of output. Later
// duplicates win; lines without a separator are dropped.
func ParseKeyValueLines(output string) map[string]string {
	fields := make(map[string]string)
	for _, line := range SplitLines(output) {
		if key, value, ok := ParseKeyValue(line); ok {
			fields[key] = value
		}
	}
	return fields
}

// IsPropertyList reports whether data is an XML or binary property list.
func IsPropertyList(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return bytes.HasPrefix(trimmed, []byte("bplist")) ||
		bytes.HasPrefix(trimmed, []byte("<?xml")) ||
		bytes.HasPrefix(trimmed, []byte("<plist"))
}

// ParsePropertyList decodes a top-level dictionary and keeps its scalar
// values as strings. Nested dictionaries and arrays are dropped.
func ParsePropertyList(data []byte) (map[string]string, error) {
	var raw map[string]any
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", definitions.ErrParseMiss, err)
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if s := utils.AnyToString(v); s != "" {
			fields[k] = s
		}
	}
	return fields, nil
}

// ParseInfoOutput reads either property-list output or key/value lines.
func ParseInfoOutput(output string) map[string]string {
	if IsPropertyList([]byte(output)) {
		fields, err := ParsePropertyList([]byte(output))
		if err == nil {
			return fields
		}
	}
	return ParseKeyValueLines(output)
}

// FilterAllowed keeps only keys in allowed (compared case-insensitively) and
// returns them lower-cased. Empty values count as absent.
func FilterAllowed(fields map[string]string, allowed []string) map[string]string {
	lowered := lo.MapKeys(fields, func(_ string, key string) string {
		return strings.ToLower(key)
	})
	picked := lo.PickByKeys(lowered, lo.Map(allowed, func(key string, _ int) string {
		return strings.ToLower(key)
	}))
	return lo.OmitByValues(picked, []string{""})
}
