package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scales = []struct {
	value int
	name  string
}{
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

func NumberToWords(num int) string {
	switch {
	case num <= 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		remainder := num % 100
		if remainder == 0 {
			return ones[num/100] + " Hundred"
		}
		return ones[num/100] + " Hundred " + NumberToWords(remainder)
	}
	for _, s := range scales {
		if num >= s.value {
			remainder := num % s.value
			if remainder == 0 {
				return NumberToWords(num/s.value) + " " + s.name
			}
			return NumberToWords(num/s.value) + " " + s.name + " " + NumberToWords(remainder)
		}
	}
	return ""
}

// NumberToCurrencyWords spells an amount as dollars and cents.
// Negative amounts are prefixed with "Minus".
func NumberToCurrencyWords(amount float64) string {
	prefix := ""
	if amount < 0 {
		prefix = "Minus "
		amount = -amount
	}
	cents := int(math.Round(amount * 100))
	dollars := cents / 100
	cents %= 100

	var parts []string
	if dollars > 0 {
		parts = append(parts, fmt.Sprintf("%s %s", NumberToWords(dollars), plural(dollars, "Dollar")))
	}
	if cents > 0 {
		parts = append(parts, fmt.Sprintf("%s %s", NumberToWords(cents), plural(cents, "Cent")))
	}

	if len(parts) == 0 {
		return "Zero Dollars Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
