// Package request shapes outbound query parameters for vendor APIs.
package request

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Params is a set of named query parameters. A nil value means the
// parameter is absent and must not be serialized at all.
type Params map[string]any

// Encode converts the parameters into url.Values. Absent (nil) values are
// omitted entirely, never serialized as "null" or an empty string. Scalars
// are coerced to strings. String slices are rendered with the repeated
// "key[]" form that ClickUp-style APIs expect.
func (p Params) Encode() url.Values {
	values := url.Values{}
	for key, value := range p {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			values.Set(key, v)
		case bool:
			values.Set(key, strconv.FormatBool(v))
		case int:
			values.Set(key, strconv.Itoa(v))
		case int64:
			values.Set(key, strconv.FormatInt(v, 10))
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case []string:
			for _, item := range v {
				values.Add(key+"[]", item)
			}
		default:
			values.Set(key, fmt.Sprintf("%v", v))
		}
	}
	return values
}

// ISOToEpochMillis converts an ISO-8601 timestamp into epoch milliseconds
// as a string. An empty input yields an empty output, so absent date
// filters stay absent instead of becoming zero.
func ISOToEpochMillis(iso string) (string, error) {
	if iso == "" {
		return "", nil
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", fmt.Errorf("parse timestamp %q: %w", iso, err)
	}
	return strconv.FormatInt(t.UnixMilli(), 10), nil
}

// DuplicateSingle works around APIs that collapse a single-element array
// into a bare scalar: a one-element slice comes back with the element
// repeated, anything else passes through unchanged.
func DuplicateSingle(items []string) []string {
	if len(items) != 1 {
		return items
	}
	return []string{items[0], items[0]}
}
