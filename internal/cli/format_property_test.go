// Package cli provides the command-line interface for the journal.
package cli

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: Currency formatting produces correct grouped output
//
// For any amount, FormatCurrency should:
// 1. Start with the $ symbol (or -$ for negative)
// 2. Have exactly 2 decimal places
// 3. Group the integer part in threes
// 4. Preserve the numeric value when parsed back
func TestProperty_CurrencyFormatting(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	groupPattern := regexp.MustCompile(`^\d{1,3}(,\d{3})*$`)

	properties.Property("FormatCurrency produces grouped format", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatCurrency(amount)

			if amount >= 0 {
				if !strings.HasPrefix(formatted, "$") {
					t.Logf("Expected $ prefix for %f, got %s", amount, formatted)
					return false
				}
			} else {
				if !strings.HasPrefix(formatted, "-$") {
					t.Logf("Expected -$ prefix for %f, got %s", amount, formatted)
					return false
				}
			}

			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("Expected 2 decimal places for %f, got %s", amount, formatted)
				return false
			}

			numPart := strings.TrimPrefix(formatted, "-")
			numPart = strings.TrimPrefix(numPart, "$")
			numPart = strings.Split(numPart, ".")[0]
			if !groupPattern.MatchString(numPart) {
				t.Logf("Invalid grouping for %f: %s", amount, formatted)
				return false
			}

			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("FormatCurrency preserves value", prop.ForAll(
		func(amount float64) bool {
			if math.IsNaN(amount) || math.IsInf(amount, 0) {
				return true
			}

			formatted := FormatCurrency(amount)
			stripped := strings.NewReplacer("$", "", ",", "").Replace(formatted)
			parsed, err := strconv.ParseFloat(stripped, 64)
			if err != nil {
				t.Logf("Unparsable output for %f: %s", amount, formatted)
				return false
			}

			rounded := math.Round(amount*100) / 100
			if math.Abs(parsed-rounded) > 0.01 {
				t.Logf("Value not preserved: original=%f, formatted=%s, parsed=%f", amount, formatted, parsed)
				return false
			}
			return true
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("FormatPnL signs positive values", prop.ForAll(
		func(pnl float64) bool {
			formatted := FormatPnL(pnl)
			if pnl > 0 {
				return strings.HasPrefix(formatted, "+$")
			}
			if pnl < 0 {
				return strings.HasPrefix(formatted, "-$")
			}
			return strings.HasPrefix(formatted, "$")
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

// Property: TruncateString never exceeds the limit and keeps short strings.
func TestProperty_TruncateString(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("output length never exceeds maxLen", prop.ForAll(
		func(s string, maxLen int) bool {
			out := TruncateString(s, maxLen)
			if len(s) <= maxLen {
				return out == s
			}
			return len(out) == maxLen
		},
		gen.AlphaString(),
		gen.IntRange(4, 40),
	))

	properties.Property("short strings pass through unchanged", prop.ForAll(
		func(s string) bool {
			return TruncateString(s, len(s)+1) == s
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Property: padding always yields the requested width for short inputs.
func TestProperty_Padding(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("PadLeft and PadRight reach the target width", prop.ForAll(
		func(s string, width int) bool {
			left := PadLeft(s, width)
			right := PadRight(s, width)
			if len(s) >= width {
				return left == s && right == s
			}
			return len(left) == width && len(right) == width &&
				strings.HasSuffix(left, s) && strings.HasPrefix(right, s)
		},
		gen.AlphaString(),
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
