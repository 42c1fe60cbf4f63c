package insight

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Render substitutes {name} placeholders from the context. Placeholders with
// no context entry are deleted, never left literal — a template must always
// produce clean prose even when a field is unavailable.
func Render(template string, context map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		return context[name]
	})
}

// FormatValue renders a KPI value for prose according to its display format.
// Percent KPIs are stored as fractions and scaled by 100 here.
func FormatValue(format domain.KPIFormat, v float64) string {
	switch format {
	case domain.FormatPercent:
		return trimTrailingZero(v*100, 1) + "%"
	case domain.FormatCurrency:
		return "$" + groupThousands(v)
	case domain.FormatRatio:
		return trimTrailingZero(v, 2)
	default:
		return trimTrailingZero(v, 2)
	}
}

// trimTrailingZero formats with at most `decimals` places and strips a
// trailing ".0"/".00" so whole numbers read naturally.
func trimTrailingZero(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// groupThousands renders a whole-number amount with comma separators.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
