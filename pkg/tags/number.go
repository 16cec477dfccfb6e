package tags

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultDecimals is used when numberformat gets no decimals argument.
	DefaultDecimals = 2
	// MaxDecimals is the largest decimals argument numberformat accepts.
	MaxDecimals = 20
)

// NumberFormat formats a number with a fixed number of decimals:
//
//	{{ numberformat 100.3333 "2" }} -> 100.33
//
// Both arguments may be numbers or numeric strings. Decimals must be a whole
// number between 0 and MaxDecimals; anything else fails with ErrInvalidDecimals.
func NumberFormat(args ...any) (string, error) {
	n, decimals, err := numberArgs(args)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(n, 'f', decimals, 64), nil
}

// LocalizedNumberFormat returns a numberformat variant that applies the
// grouping and decimal separators of tag.
func LocalizedNumberFormat(tag language.Tag) func(args ...any) (string, error) {
	p := message.NewPrinter(tag)
	return func(args ...any) (string, error) {
		n, decimals, err := numberArgs(args)
		if err != nil {
			return "", err
		}
		return p.Sprint(number.Decimal(n, number.Scale(decimals))), nil
	}
}

// RequireParameterCount fails when more than n arguments are given.
func RequireParameterCount(args []any, n int) error {
	if len(args) > n {
		return fmt.Errorf("%w: %d/%d", ErrParameterCount, len(args), n)
	}
	return nil
}

func numberArgs(args []any) (float64, int, error) {
	if err := RequireParameterCount(args, 2); err != nil {
		return 0, 0, err
	}
	if len(args) == 0 {
		return 0, 0, ErrExpectedNumber
	}

	n, ok := toFloat(args[0])
	if !ok {
		return 0, 0, ErrExpectedNumber
	}

	decimals := DefaultDecimals
	if len(args) == 2 {
		d, ok := toFloat(args[1])
		if !ok || d < 0 || d > MaxDecimals || d != float64(int(d)) {
			return 0, 0, fmt.Errorf("%w: %v", ErrInvalidDecimals, args[1])
		}
		decimals = int(d)
	}
	return n, decimals, nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	case fmt.Stringer:
		f, err := strconv.ParseFloat(x.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
