// Package factextract pulls structured facts out of free-form provider
// text: fenced or chatty JSON payloads and pattern-matched snippets.
package factextract

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// JSONObject returns the outermost {...} object found in text. Code fences
// and prose around the object are ignored; ok is false when nothing decodes.
func JSONObject(text string) (map[string]any, bool) {
	cleaned := stripFences(text)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var out map[string]any
	if err := sonic.UnmarshalString(cleaned[start:end+1], &out); err != nil {
		return nil, false
	}
	return out, true
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	return strings.ReplaceAll(text, "```", "")
}

// String returns the first non-empty value stored under any of keys.
// Numbers are rendered without a trailing ".0".
func String(m map[string]any, keys ...string) string {
	for _, key := range keys {
		raw, ok := lookup(m, key)
		if !ok || raw == nil {
			continue
		}
		var value string
		switch v := raw.(type) {
		case string:
			value = strings.TrimSpace(v)
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			value = strconv.Itoa(v)
		case int64:
			value = strconv.FormatInt(v, 10)
		case bool:
			value = strconv.FormatBool(v)
		}
		if value != "" {
			return value
		}
	}
	return ""
}

// StringOr is String with a fallback for missing values.
func StringOr(m map[string]any, fallback string, keys ...string) string {
	if v := String(m, keys...); v != "" {
		return v
	}
	return fallback
}

func Object(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		raw, ok := lookup(m, key)
		if !ok {
			continue
		}
		if obj, ok := raw.(map[string]any); ok {
			return obj
		}
	}
	return nil
}

// Objects returns the object elements of the first array found under keys.
func Objects(m map[string]any, keys ...string) []map[string]any {
	for _, key := range keys {
		raw, ok := lookup(m, key)
		if !ok {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out
	}
	return nil
}

// Strings returns the string elements of the first array found under keys.
func Strings(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		raw, ok := lookup(m, key)
		if !ok {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

// lookup matches keys case-insensitively and ignores "_" and "-".
func lookup(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m[key]; ok {
		return v, true
	}
	want := foldKey(key)
	for k, v := range m {
		if foldKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

func foldKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "")
	return strings.ReplaceAll(key, "-", "")
}
