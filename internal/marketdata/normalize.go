package marketdata

import (
	"fmt"
	"strings"
)

// Exchange identifies the listing venue of an A-share symbol.
type Exchange string

const (
	Shanghai Exchange = "sh"
	Shenzhen Exchange = "sz"
)

// Symbol is a normalized A-share symbol: a six-digit code plus its
// resolved exchange.
type Symbol struct {
	Code     string
	Exchange Exchange
}

// Normalize resolves a raw symbol string into a Symbol. Accepts a bare
// six-digit code ("601318") or one with an exchange prefix
// ("sh601318"). Codes starting with "6" list on Shanghai, everything
// else on Shenzhen.
func Normalize(raw string) (Symbol, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	code = strings.TrimPrefix(code, "sh")
	code = strings.TrimPrefix(code, "sz")

	if len(code) != 6 {
		return Symbol{}, fmt.Errorf("invalid symbol %q: expected a six-digit code", raw)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return Symbol{}, fmt.Errorf("invalid symbol %q: non-digit character", raw)
		}
	}

	exchange := Shenzhen
	if code[0] == '6' {
		exchange = Shanghai
	}

	return Symbol{Code: code, Exchange: exchange}, nil
}

// String returns the prefixed form, e.g. "sh601318".
func (s Symbol) String() string {
	return string(s.Exchange) + s.Code
}

// MarketDigit returns the market prefix used by the quote service:
// "0" for Shanghai, "1" for Shenzhen.
func (s Symbol) MarketDigit() string {
	if s.Exchange == Shanghai {
		return "0"
	}
	return "1"
}
