package utils

import (
	"fmt"
	"io"

	json "github.com/bytedance/sonic"
)

// JsonString is for log fields; encoding errors yield an empty string.
func JsonString(obj any) string {
	jsonStr, _ := json.Marshal(obj)
	return string(jsonStr)
}

// WriteJsonIndent writes obj as two-space indented JSON followed by a newline.
func WriteJsonIndent(w io.Writer, obj any) error {
	jsonStr, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", jsonStr); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
