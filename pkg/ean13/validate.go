package ean13

// Length is the number of digits of an EAN-13 code, check digit included.
const Length = 13

// Validate performs a very simple validation of an EAN-13 code: it must be
// made of exactly 13 ASCII digits. The check digit is not verified.
func Validate(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
