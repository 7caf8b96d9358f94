package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// Tags holds the metadata of one file keyed by exiftool tag name. Values
// keep the types exiftool's JSON output decodes to.
type Tags map[string]any

// String returns the tag as text.
func (t Tags) String(key string) (string, bool) {
	v, ok := t[key]
	if !ok || v == nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

// Int returns the tag as an integer.
func (t Tags) Int(key string) (int, bool) {
	v, ok := t[key]
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Strings returns a list-valued tag. A comma separated string is split.
func (t Tags) Strings(key string) ([]string, bool) {
	v, ok := t[key]
	if !ok || v == nil {
		return nil, false
	}
	switch v := v.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, strings.TrimSpace(fmt.Sprint(e)))
		}
		return out, true
	case string:
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, true
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}, true
	default:
		return []string{fmt.Sprint(v)}, true
	}
}
