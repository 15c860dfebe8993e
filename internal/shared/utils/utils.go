package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeID converts an external identifier of any JSON-decoded shape
// (string, float64, int, json.Number) into its canonical decimal string.
// Registry snapshots and WordPress responses disagree on id types, so
// every lookup goes through this first.
func NormalizeID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return id.String()
	case float64:
		// JSON numbers decode as float64. Ids are integral.
		return strconv.FormatInt(int64(id), 10)
	case float32:
		return strconv.FormatInt(int64(id), 10)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// SameID reports whether two identifiers match after normalization.
func SameID(a, b interface{}) bool {
	na, nb := NormalizeID(a), NormalizeID(b)
	return na != "" && na == nb
}
