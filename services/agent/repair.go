package agent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports model output that could not be coerced into a JSON
// object. It carries the original text for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable model output: %q", e.Raw)
}

var (
	bareKeyRE       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	bareValueRE     = regexp.MustCompile(`:\s*([A-Za-z_][A-Za-z0-9_-]*)\s*([,}])`)
	trailingCommaRE = regexp.MustCompile(`,\s*([}\]])`)
)

// RepairJSON coerces a near-JSON blob into a string-to-string mapping.
// Models frequently emit unquoted keys, single quotes, trailing commas, or
// wrap the object in prose; each rewrite below is purely syntactic. If the
// result still does not parse, the original text comes back in a ParseError.
func RepairJSON(raw string) (map[string]string, error) {
	blob := raw
	if i := strings.Index(blob, "{"); i >= 0 {
		if j := strings.LastIndex(blob, "}"); j > i {
			blob = blob[i : j+1]
		}
	}

	fixed := bareKeyRE.ReplaceAllString(blob, `$1"$2":`)
	fixed = bareValueRE.ReplaceAllString(fixed, `: "$1"$2`)
	fixed = strings.ReplaceAll(fixed, "'", `"`)
	fixed = trailingCommaRE.ReplaceAllString(fixed, "$1")

	var parsed map[string]any
	if err := json.Unmarshal([]byte(fixed), &parsed); err != nil {
		return nil, &ParseError{Raw: raw}
	}

	out := make(map[string]string, len(parsed))
	for k, v := range parsed {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}
