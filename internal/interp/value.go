// Package interp implements the BASIC runtime: the value model, the variable
// store, the recursive-descent expression evaluator, the statement executor,
// and the driver loop that walks the numbered-line program.
//
// Statements are interpreted directly against the source text of each line.
// The program counter is a (line index, byte offset) pair; FOR, GOSUB and
// inline IF ... THEN all resume execution mid-line through it.
package interp

import (
	"strconv"

	"github.com/cwbudde/go-basic/internal/errors"
)

// Value represents a runtime value: a 64-bit float or a bounded byte string.
// All runtime values must implement this interface.
type Value interface {
	// Type returns the type name of the value ("NUMBER" or "STRING").
	Type() string
	// String returns the display representation of the value.
	String() string
}

// NumberValue represents a numeric value.
type NumberValue struct {
	Value float64
}

// Type returns "NUMBER".
func (n *NumberValue) Type() string {
	return "NUMBER"
}

// String formats the number as the shortest decimal that round-trips, so
// VAL(STR$(x)) recovers x exactly.
func (n *NumberValue) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringValue represents a string value, capped at MaxStrLen bytes.
type StringValue struct {
	Value string
}

// Type returns "STRING".
func (s *StringValue) Type() string {
	return "STRING"
}

// String returns the string value itself.
func (s *StringValue) String() string {
	return s.Value
}

func numberVal(v float64) *NumberValue {
	return &NumberValue{Value: v}
}

// stringVal builds a StringValue, clamping to MaxStrLen.
func stringVal(s string) *StringValue {
	if len(s) > MaxStrLen {
		s = s[:MaxStrLen]
	}
	return &StringValue{Value: s}
}

// zeroValue is the initial content of a fresh scalar or grown array cell.
func zeroValue(isString bool) Value {
	if isString {
		return &StringValue{}
	}
	return &NumberValue{}
}

// toNumber unwraps a numeric value or reports a TypeMismatch.
func toNumber(v Value) (float64, error) {
	n, ok := v.(*NumberValue)
	if !ok {
		return 0, errors.New(errors.TypeMismatch, "numeric value required")
	}
	return n.Value, nil
}

// toString unwraps a string value or reports a TypeMismatch.
func toString(v Value) (string, error) {
	s, ok := v.(*StringValue)
	if !ok {
		return "", errors.New(errors.TypeMismatch, "string value required")
	}
	return s.Value, nil
}

// arrayIndex converts a numeric index, absorbing float drift from loop
// counters before truncation.
func arrayIndex(n float64) int {
	return int(n + 0.00001)
}
