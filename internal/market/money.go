package market

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cashPrinter = message.NewPrinter(language.English)

// maxSignificantFigures is the most digits an int64 power of ten can hold.
const maxSignificantFigures = 18

// TruncateSF rounds n down to sf leading significant digits.
// TruncateSF(1247311, 4) == 1247000.
func TruncateSF(n int64, sf int) int64 {
	if n < 0 {
		return -TruncateSF(-n, sf)
	}
	if sf < 1 || sf > maxSignificantFigures {
		return n
	}
	var pow int64 = 1
	for limit := n; limit >= pow10(sf); limit /= 10 {
		pow *= 10
	}
	return n / pow * pow
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

// FormatCash renders an amount as $1,250,000.
func FormatCash(n int64) string {
	if n < 0 {
		return "-" + cashPrinter.Sprintf("$%d", -n)
	}
	return cashPrinter.Sprintf("$%d", n)
}
