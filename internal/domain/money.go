package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount indicates a monetary amount that could not be parsed or is negative.
var ErrInvalidAmount = errors.New("invalid amount")

// Centavos is a currency amount held as an integer number of cents.
// Sums over Centavos are exact; the type never round-trips through float64.
type Centavos int64

// ParseCentavos converts a decimal string such as "100" or "40.25" into cents.
// Both dot and comma decimal separators are accepted. Anything beyond two
// fractional digits is rounded half-up. Negative amounts are rejected.
func ParseCentavos(s string) (Centavos, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(parts) == 2 && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	return Centavos(iv*100 + frac), nil
}

// String renders the amount as a plain decimal, without a trailing ".00"
// for whole values so that totals read as "100" rather than "100.00".
func (c Centavos) String() string {
	if c%100 == 0 {
		return strconv.FormatInt(int64(c)/100, 10)
	}
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount as a bare JSON number.
func (c Centavos) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a numeric string.
func (c *Centavos) UnmarshalJSON(data []byte) error {
	var raw json.Number
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		raw = json.Number(s)
	}
	parsed, err := ParseCentavos(raw.String())
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
