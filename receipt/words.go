package receipt

import "strings"

var onesWords = []string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

func twoDigits(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}

// AmountInWords spells out whole rupees in the Indian numbering system
// (hundred, thousand, lakh, crore): 123456 becomes "One Lakh Twenty Three
// Thousand Four Hundred And Fifty Six". Fractional paise are deliberately
// not spelled out, matching what is printed on the physical receipt book.
func AmountInWords(rupees int64) string {
	if rupees < 0 {
		return "Minus " + AmountInWords(-rupees)
	}
	if rupees < 20 {
		return onesWords[rupees]
	}

	var parts []string

	if crore := rupees / 1e7; crore > 0 {
		parts = append(parts, AmountInWords(crore), "Crore")
		rupees %= 1e7
	}
	if lakh := rupees / 1e5; lakh > 0 {
		parts = append(parts, twoDigits(lakh), "Lakh")
		rupees %= 1e5
	}
	if thousand := rupees / 1000; thousand > 0 {
		parts = append(parts, twoDigits(thousand), "Thousand")
		rupees %= 1000
	}
	if hundred := rupees / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
		rupees %= 100
	}
	if rupees > 0 {
		if len(parts) > 0 {
			parts = append(parts, "And")
		}
		parts = append(parts, twoDigits(rupees))
	}

	return strings.Join(parts, " ")
}
