package recipe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// UnitGrams is the canonical unit for protein, carbs and fats.
	UnitGrams = "g"
	// UnitKcal is the canonical unit for calories.
	UnitKcal = "kcal"
)

var nonNumericPattern = regexp.MustCompile(`[^\d.]`)

// NormalizeMacro coerces a heterogeneous macro value into the canonical
// "<number><unit>" form. It is a total function: every input produces a
// string. Rules, in order:
//  1. numeric values are formatted and suffixed with the unit
//  2. strings already containing the unit have all trailing repetitions of
//     the unit collapsed to exactly one occurrence, whitespace trimmed
//  3. strings that parse fully as a number get the unit appended
//  4. anything else is stripped down to digits and decimal points before
//     the unit is appended (lossy, best-effort)
//
// The fallback can produce a bare unit for an all-text value; the shape
// validator rejects that, so genuinely unusable macros still surface.
func NormalizeMacro(value any, unit string) string {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) + unit
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32) + unit
	case int:
		return strconv.Itoa(v) + unit
	case int64:
		return strconv.FormatInt(v, 10) + unit
	case json.Number:
		return v.String() + unit
	case string:
		return normalizeMacroString(v, unit)
	default:
		return normalizeMacroString(fmt.Sprint(value), unit)
	}
}

func normalizeMacroString(value, unit string) string {
	s := strings.TrimSpace(value)

	if strings.Contains(s, unit) {
		collapse := regexp.MustCompile(`\s*(?:` + regexp.QuoteMeta(unit) + `\s*)+$`)
		return strings.TrimSpace(collapse.ReplaceAllString(s, unit))
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s + unit
	}

	return nonNumericPattern.ReplaceAllString(s, "") + unit
}

// MacroPattern returns the canonical pattern a normalized macro value must
// match for the given unit: a non-negative number followed by exactly one
// occurrence of the unit.
func MacroPattern(unit string) *regexp.Regexp {
	return regexp.MustCompile(`^\d+(\.\d+)?` + regexp.QuoteMeta(unit) + `$`)
}
