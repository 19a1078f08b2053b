package sync

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a feed cell that could not be normalized. It aborts the
// whole run; a half-synced catalog built from a corrupt feed is worse than no
// sync at all.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s value %q", e.Field, e.Value)
}

// NormalizeQuantity maps a raw feed quantity to a stock count.
//
// The feed encodes "more than ten in stock" as the literal ">10", published
// here as 100. The literal "1" maps to 0: the supplier holds the last unit in
// reserve, so it must not be sold. Anything else has to be a plain integer.
func NormalizeQuantity(raw string) (int, error) {
	switch raw {
	case ">10":
		return 100, nil
	case "1":
		return 0, nil
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ParseError{Field: "quantity", Value: raw}
	}
	return quantity, nil
}

// NormalizePrice reduces a feed price such as "5990.00 руб." to its whole
// currency units as a digit string ("5990"). Callers needing a number convert
// it themselves.
func NormalizePrice(raw string) (string, error) {
	integerPart, _, _ := strings.Cut(raw, ".")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, integerPart)
	if digits == "" {
		return "", &ParseError{Field: "price", Value: raw}
	}
	return digits, nil
}
