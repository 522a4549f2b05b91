package scoring

import (
	"encoding/json"
	"sort"

	"github.com/dsci3d/learning-energy-profile/domain/instrument"
)

// Validate checks a typed rating set against the taxonomy: all 88 codes
// present, no foreign codes, every value in 1..5. Missing codes are reported
// first, then unknown codes, then the first out-of-range item in code order.
func Validate(tax *instrument.Taxonomy, ratings map[string]int) error {
	if err := checkCompleteness(tax, keysOf(ratings)); err != nil {
		return err
	}
	for _, code := range sortedKeys(ratings) {
		v := ratings[code]
		if v < likertMin || v > likertMax {
			return NewOutOfRangeError(code, v)
		}
	}
	return nil
}

// ValidateRaw checks an untyped rating set (as decoded from JSON or a form)
// and returns the typed equivalent. Values must be integers; integral floats
// are accepted because JSON decoding produces float64.
func ValidateRaw(tax *instrument.Taxonomy, values map[string]any) (map[string]int, error) {
	if err := checkCompleteness(tax, keysOfAny(values)); err != nil {
		return nil, err
	}
	ratings := make(map[string]int, len(values))
	for _, code := range sortedKeysAny(values) {
		raw := values[code]
		v, ok := asInt(raw)
		if !ok {
			return nil, NewTypeMismatchError(code, raw)
		}
		if v < likertMin || v > likertMax {
			return nil, NewOutOfRangeError(code, v)
		}
		ratings[code] = v
	}
	return ratings, nil
}

func checkCompleteness(tax *instrument.Taxonomy, submitted []string) error {
	have := make(map[string]bool, len(submitted))
	for _, code := range submitted {
		have[code] = true
	}

	var missing []string
	for _, code := range tax.Codes() {
		if !have[code] {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return NewIncompleteInputError(missing)
	}

	var extra []string
	for _, code := range submitted {
		if !tax.Contains(code) {
			extra = append(extra, code)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return NewUnknownItemsError(extra)
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		if float32(int(n)) == n {
			return int(n), true
		}
	case float64:
		if float64(int(n)) == n {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

func keysOf(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func keysOfAny(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func sortedKeys(m map[string]int) []string {
	keys := keysOf(m)
	sort.Strings(keys)
	return keys
}

func sortedKeysAny(m map[string]any) []string {
	keys := keysOfAny(m)
	sort.Strings(keys)
	return keys
}
