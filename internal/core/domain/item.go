package domain

import "strconv"

// Store items round-trip through map[string]any documents. Numeric attributes
// come back as float64 from both the JSON codec and the DynamoDB attribute
// codec, so the accessors normalize instead of type-asserting.

func str(v any) string {
	s, _ := v.(string)
	return s
}

func intVal(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, _ := strconv.Atoi(n)
		return parsed
	default:
		return 0
	}
}
