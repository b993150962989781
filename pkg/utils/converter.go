package utils

import (
	"fmt"
	"strings"
)

// FormatIDR formats an amount as Indonesian Rupiah with thousands separators,
// e.g. 12500000 -> "Rp 12.500.000".
func FormatIDR(amount float64) string {
	whole := int64(amount)
	if whole < 0 {
		return "-" + FormatIDR(-amount)
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	rem := len(digits) % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
		if len(digits) > rem {
			b.WriteByte('.')
		}
	}
	for i := rem; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return "Rp " + b.String()
}
