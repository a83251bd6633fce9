package apiclient

import "strings"

// ConvertKeysToCamel rewrites every map key in a decoded JSON value from
// snake_case to camelCase, recursing through nested objects and arrays.
func ConvertKeysToCamel(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[snakeToCamel(key)] = ConvertKeysToCamel(nested)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, nested := range v {
			out[i] = ConvertKeysToCamel(nested)
		}
		return out
	default:
		return value
	}
}

// ConvertKeysToSnake is the inverse transform, applied to outgoing bodies.
func ConvertKeysToSnake(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[camelToSnake(key)] = ConvertKeysToSnake(nested)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, nested := range v {
			out[i] = ConvertKeysToSnake(nested)
		}
		return out
	default:
		return value
	}
}

func snakeToCamel(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) == 1 {
		return key
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func camelToSnake(key string) string {
	var b strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
