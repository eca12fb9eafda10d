package compliance

// ISIN validation per ISO 6166: a 12-character identifier made of a 2-letter
// country code, 9 alphanumeric characters (the NSIN) and one numeric check
// digit computed with the Luhn algorithm over the letter-expanded digit
// string.

// ValidateISINFormat reports whether isin has valid ISO 6166 structure:
// exactly 12 characters, the first two uppercase letters, the next nine
// uppercase letters or digits, and the last a digit. It does not verify the
// check digit; use ValidateISINChecksum for that.
func ValidateISINFormat(isin string) bool {
	if len(isin) != 12 {
		return false
	}
	for i := 0; i < 2; i++ {
		if isin[i] < 'A' || isin[i] > 'Z' {
			return false
		}
	}
	for i := 2; i < 11; i++ {
		c := isin[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	last := isin[11]
	return last >= '0' && last <= '9'
}

// ValidateISINChecksum reports whether isin passes the ISO 6166 check-digit
// test. Each letter is expanded to its two-digit alphabet value (A=10 ...
// Z=35), digits pass through, and the resulting digit string must satisfy
// Luhn mod-10. A string that fails ValidateISINFormat fails here too.
func ValidateISINChecksum(isin string) bool {
	if !ValidateISINFormat(isin) {
		return false
	}

	digits := make([]int, 0, 2*len(isin))
	for i := 0; i < len(isin); i++ {
		c := isin[i]
		if c >= 'A' && c <= 'Z' {
			v := int(c-'A') + 10
			digits = append(digits, v/10, v%10)
		} else {
			digits = append(digits, int(c-'0'))
		}
	}

	// Luhn: double every second digit from the right, subtracting 9 when
	// the doubled value exceeds 9, then require the sum to be 0 mod 10.
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
