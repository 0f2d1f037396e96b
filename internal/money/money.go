package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol знак рупии в сообщениях и подписях
const Symbol = "₹"

// Plain форматирует сумму без разделителей разрядов: "₹380", "₹12.5"
func Plain(amount decimal.Decimal) string {
	return Symbol + amount.Round(2).String()
}

// Grouped форматирует сумму с запятыми между разрядами: "₹1,140", "₹12,345.5"
func Grouped(amount decimal.Decimal) string {
	s := amount.Round(2).String()

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 4)
	if neg {
		b.WriteString("-")
	}
	b.WriteString(Symbol)

	// Разделители вставляются слева направо
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}

	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	return b.String()
}
