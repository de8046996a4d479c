package ozonsync

import "strings"

// NormalizePrice reduces free-form supplier price text to a digit-only
// string: "5'990.00 руб." becomes "5990". Everything from the first "."
// onward is discarded, then every non-ASCII-digit is stripped from the
// prefix. An input with no digits before the first "." normalizes to the
// empty string, which is accepted and pushed as-is.
func NormalizePrice(raw string) string {
	prefix, _, _ := strings.Cut(raw, ".")

	var b strings.Builder
	b.Grow(len(prefix))
	for _, r := range prefix {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
