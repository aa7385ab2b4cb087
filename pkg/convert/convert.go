// Package convert provides the text-to-value converters and guards used by
// form widgets. Every converter is a pure function; failures are reported as
// *fault.ValidationError so the form engine can keep them local to a field.
package convert

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-f2f/pkg/fault"
)

// Func converts raw text into a typed value.
type Func[T any] func(raw string) (T, error)

// Check inspects an already converted value and passes it through unchanged
// or rejects it.
type Check[T any] func(value T) (T, error)

var (
	integerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatPattern   = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// Identity returns the raw text unchanged.
func Identity(raw string) (string, error) {
	return raw, nil
}

// ToInteger parses an optionally signed decimal integer. Surrounding
// whitespace is ignored.
func ToInteger(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if !integerPattern.MatchString(trimmed) {
		return 0, fault.Validation("not an integer: %q", raw)
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fault.Validation("integer out of range: %q", raw)
	}
	return value, nil
}

// ToFloat parses a decimal number or a single "numerator/denominator"
// rational. Empty text is rejected.
func ToFloat(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fault.Validation("empty value")
	}

	parts := strings.Split(trimmed, "/")
	switch len(parts) {
	case 1:
		return parseDecimal(trimmed)
	case 2:
		numerator, err := parseDecimal(parts[0])
		if err != nil {
			return 0, err
		}
		denominator, err := parseDecimal(parts[1])
		if err != nil {
			return 0, err
		}
		if denominator == 0 {
			return 0, fault.Validation("division by zero: %q", raw)
		}
		return numerator / denominator, nil
	default:
		return 0, fault.Validation("too many separators in %q", raw)
	}
}

func parseDecimal(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fault.Validation("empty value")
	}
	if !floatPattern.MatchString(trimmed) {
		return 0, fault.Validation("not a number: %q", raw)
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fault.Validation("not a number: %q", raw)
	}
	return value, nil
}

// AtLeast rejects values below bound.
func AtLeast[T cmp.Ordered](bound T) Check[T] {
	return func(value T) (T, error) {
		if value < bound {
			return value, fault.Validation("must be at least %v, got %v", bound, value)
		}
		return value, nil
	}
}

// AtMost rejects values above bound.
func AtMost[T cmp.Ordered](bound T) Check[T] {
	return func(value T) (T, error) {
		if value > bound {
			return value, fault.Validation("must be at most %v, got %v", bound, value)
		}
		return value, nil
	}
}

// InRange rejects values outside the inclusive range [lo, hi].
func InRange[T cmp.Ordered](lo, hi T) Check[T] {
	return func(value T) (T, error) {
		if value < lo || value > hi {
			return value, fault.Validation("must be in range [%v, %v], got %v", lo, hi, value)
		}
		return value, nil
	}
}

// ListOf splits raw text on sep and converts every part with inner, keeping
// the original order. A nil inner keeps the raw substrings, which requires T
// to be string.
func ListOf[T any](sep string, inner Func[T]) Func[[]T] {
	convertItem := inner
	if convertItem == nil {
		convertItem = passthrough[T]
	}
	return func(raw string) ([]T, error) {
		parts := strings.Split(raw, sep)
		out := make([]T, 0, len(parts))
		for idx, part := range parts {
			value, err := convertItem(part)
			if err != nil {
				return nil, itemError(err, "item %d", idx)
			}
			out = append(out, value)
		}
		return out, nil
	}
}

// MatrixOf splits raw text into rows on rowSep and each row into columns on
// colSep. When more than one row is present every row must have the same
// number of columns as the first one.
func MatrixOf[T any](rowSep, colSep string, inner Func[T]) Func[[][]T] {
	row := ListOf(colSep, inner)
	return func(raw string) ([][]T, error) {
		lines := strings.Split(raw, rowSep)
		out := make([][]T, 0, len(lines))
		for idx, line := range lines {
			values, err := row(line)
			if err != nil {
				return nil, itemError(err, "row %d", idx)
			}
			out = append(out, values)
		}
		if len(out) > 1 {
			want := len(out[0])
			for idx, values := range out[1:] {
				if len(values) != want {
					return nil, fault.Validation("row %d has length %d, expected %d", idx+1, len(values), want)
				}
			}
		}
		return out, nil
	}
}

// Compose chains checks right to left: the last check runs first, matching
// function composition order.
func Compose[T any](checks ...Check[T]) Check[T] {
	return func(value T) (T, error) {
		current := value
		for idx := len(checks) - 1; idx >= 0; idx-- {
			if checks[idx] == nil {
				continue
			}
			next, err := checks[idx](current)
			if err != nil {
				return next, err
			}
			current = next
		}
		return current, nil
	}
}

// Pipe converts raw text with conv and then applies checks in the order
// given.
func Pipe[T any](conv Func[T], checks ...Check[T]) Func[T] {
	return func(raw string) (T, error) {
		value, err := conv(raw)
		if err != nil {
			return value, err
		}
		for _, check := range checks {
			if check == nil {
				continue
			}
			if value, err = check(value); err != nil {
				return value, err
			}
		}
		return value, nil
	}
}

// Then feeds the result of conv into next.
func Then[A, B any](conv Func[A], next func(A) (B, error)) Func[B] {
	return func(raw string) (B, error) {
		value, err := conv(raw)
		if err != nil {
			var zero B
			return zero, err
		}
		return next(value)
	}
}

func passthrough[T any](raw string) (T, error) {
	value, ok := any(raw).(T)
	if !ok {
		var zero T
		return zero, fault.Structural("convert: list items of type %T need a converter", zero)
	}
	return value, nil
}

func itemError(err error, format string, args ...any) error {
	var validation *fault.ValidationError
	if errors.As(err, &validation) {
		return fault.Validation("%s: %s", fmt.Sprintf(format, args...), validation.Message)
	}
	return err
}
