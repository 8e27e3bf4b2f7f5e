// pkg/cleaner/operations.go
package cleaner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Prabhav9252/netflix-elt/pkg/model"
)

// fieldChange describes a single mutation applied to a field value.
type fieldChange struct {
	Operation string
	Reason    string
	Original  string
	NewValue  string
}

// cleanField applies the field-level cleaning sequence: control-character
// scrub, then whitespace trim. A value trimmed down to nothing is flagged as
// an empty-to-null conversion since the loader stores empty fields as NULL.
func cleanField(value string) (string, []fieldChange) {
	if value == "" {
		return value, nil
	}

	var changes []fieldChange

	scrubbed := scrubControlChars(value)
	if scrubbed != value {
		changes = append(changes, fieldChange{
			Operation: model.OpControlCharScrub,
			Reason:    "control_characters_in_value",
			Original:  value,
			NewValue:  scrubbed,
		})
	}

	trimmed := strings.TrimSpace(scrubbed)
	if trimmed != scrubbed {
		operation := model.OpWhitespaceTrim
		reason := "leading_or_trailing_whitespace"
		if trimmed == "" {
			operation = model.OpEmptyToNull
			reason = "whitespace_only_value"
		}
		changes = append(changes, fieldChange{
			Operation: operation,
			Reason:    reason,
			Original:  scrubbed,
			NewValue:  trimmed,
		})
	}

	return trimmed, changes
}

// scrubControlChars removes control characters from a value. Newlines and
// tabs survive since quoted CSV fields legitimately contain them; carriage
// returns do not (quoted fields saved on Windows carry CRLF line endings).
func scrubControlChars(s string) string {
	clean := true
	for _, r := range s {
		if isDisallowedControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isDisallowedControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDisallowedControl(r rune) bool {
	if r == '\n' || r == '\t' {
		return false
	}
	return unicode.IsControl(r)
}

// toNullableString safely converts an interface to a nullable string
func toNullableString(v interface{}) *string {
	if v == nil {
		return nil
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	default:
		s = fmt.Sprintf("%v", val)
	}
	return &s
}
