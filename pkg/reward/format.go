package reward

import "github.com/dustin/go-humanize"

// FormatIDR renders an amount as Indonesian rupiah with two decimals,
// e.g. "Rp 1.234.567,50".
func FormatIDR(v float64) string {
	return "Rp " + humanize.FormatFloat("#.###,##", v)
}
