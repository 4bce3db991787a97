// Package releasenotes applies a release-notes payload, as dispatched by the
// kellnr release workflow, to changelog.json.
package releasenotes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kellnr/site-feed/source"
)

// Sections in the order their items become changelog entries. Other items
// are filed as Changed.
var sectionOrder = []string{
	"Added",
	"Changed",
	"Deprecated",
	"Removed",
	"Fixed",
	"Security",
	"Other",
}

// Payload is a validated release-notes message.
type Payload struct {
	Version    string
	Tag        string
	Date       time.Time
	SourceRepo string
	// Sections maps a Keep a Changelog section to its bullet lines.
	Sections map[string][]string
}

// ParsePayload decodes and validates a JSON payload.
func ParsePayload(data []byte) (*Payload, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &source.ParseError{Path: "payload", Err: err}
	}
	return ValidatePayload(v)
}

// ValidatePayload checks a decoded payload and converts it to a Payload.
func ValidatePayload(v any) (*Payload, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, mismatch("payload", "object", v, true)
	}

	p := &Payload{Sections: make(map[string][]string)}
	var err error
	if p.Version, err = requiredString(obj, "version"); err != nil {
		return nil, err
	}
	if p.Tag, err = requiredString(obj, "tag"); err != nil {
		return nil, err
	}
	date, err := requiredString(obj, "date")
	if err != nil {
		return nil, err
	}
	if p.SourceRepo, err = requiredString(obj, "source_repo"); err != nil {
		return nil, err
	}

	raw, present := obj["keep_a_changelog"]
	kac, ok := raw.(map[string]any)
	if !ok {
		return nil, mismatch("payload.keep_a_changelog", "object", raw, present)
	}

	if p.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
		return nil, &source.ValidationError{
			Path:     "payload.date",
			Expected: "RFC 3339 date-time",
			Actual:   fmt.Sprintf("%q", date),
		}
	}

	// Unknown sections are ignored.
	for _, section := range sectionOrder {
		raw, present := kac[section]
		if !present {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			return nil, mismatch("payload.keep_a_changelog."+section, "array", raw, true)
		}
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, stringify(item))
		}
		p.Sections[section] = lines
	}

	return p, nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	path := "payload." + key
	v, present := obj[key]
	s, ok := v.(string)
	if !ok {
		return "", mismatch(path, "string", v, present)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &source.ValidationError{Path: path, Expected: "non-empty string", Actual: "empty string"}
	}
	return s, nil
}

func mismatch(path, expected string, v any, present bool) error {
	actual := "missing"
	if present {
		actual = source.TypeName(v)
	}
	return &source.ValidationError{Path: path, Expected: expected, Actual: actual}
}

// stringify turns a bullet item of any JSON type into its text.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
