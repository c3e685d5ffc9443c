package identifier

import "strings"

// normalizeISBN strips separators and upper-cases a trailing x check digit.
func normalizeISBN(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToUpper(s)
}

// ValidISBN reports whether a separator-free string is a checksum-valid
// ISBN-10 or ISBN-13.
func ValidISBN(s string) bool {
	switch len(s) {
	case 10:
		return validISBN10(s)
	case 13:
		return validISBN13(s)
	default:
		return false
	}
}

// validISBN10 checks the mod-11 weighted sum. The check digit may be X,
// standing for 10.
func validISBN10(s string) bool {
	sum := 0
	for i, c := range s {
		var digit int
		switch {
		case c >= '0' && c <= '9':
			digit = int(c - '0')
		case c == 'X' && i == 9:
			digit = 10
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// validISBN13 checks the alternating 1/3-weighted mod-10 sum.
func validISBN13(s string) bool {
	sum := 0
	for i, c := range s {
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return sum%10 == 0
}
