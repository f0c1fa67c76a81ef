package adapters

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

const cameroonCountryCode = "237"

// operatorPrefixes is matched in order, first hit wins. It approximates the
// Cameroonian numbering plan and has not been confirmed with the operators.
var operatorPrefixes = []struct {
	prefix   string
	operator model.MobileOperator
}{
	{"69", model.OperatorOrange},
	{"65", model.OperatorMTN},
	{"66", model.OperatorMTN},
	{"67", model.OperatorMTN},
	{"68", model.OperatorMTN},
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhoneForS3P reduces a number to the 9-digit local form S3P expects.
func FormatPhoneForS3P(phone string) (string, error) {
	digits := digitsOnly(phone)

	switch {
	case strings.HasPrefix(digits, "00"+cameroonCountryCode):
		digits = digits[len("00"+cameroonCountryCode):]
	case strings.HasPrefix(digits, cameroonCountryCode) && len(digits) == 12:
		digits = digits[len(cameroonCountryCode):]
	}

	if len(digits) != 9 || digits[0] != '6' {
		return "", fmt.Errorf("%w: %q is not a 9-digit number starting with 6", model.ErrInvalidPhone, phone)
	}
	return digits, nil
}

// FormatPhoneForEnkap returns the 12-digit international form (237XXXXXXXXX).
func FormatPhoneForEnkap(phone string) (string, error) {
	digits := strings.TrimPrefix(digitsOnly(phone), "00")
	if len(digits) == 9 {
		digits = cameroonCountryCode + digits
	}
	if len(digits) != 12 {
		return "", fmt.Errorf("%w: %q does not normalize to 12 digits", model.ErrInvalidPhone, phone)
	}
	return digits, nil
}

// DetectOperator guesses the mobile-money network from the number prefix and
// falls back to MTN.
func DetectOperator(phone string) model.MobileOperator {
	local, err := FormatPhoneForS3P(phone)
	if err != nil {
		local = digitsOnly(phone)
	}
	for _, p := range operatorPrefixes {
		if strings.HasPrefix(local, p.prefix) {
			return p.operator
		}
	}
	return model.OperatorMTN
}
