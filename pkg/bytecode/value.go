package bytecode

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a runtime value: int64, float64, string, bool or nil.
type Value = any

// Truthy reports whether a value counts as true in a condition. Nil, false,
// numeric zero and the empty string are falsy; everything else is truthy.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}

// Format renders a value the way PRINT and str() do. Whole floats keep one
// decimal place so integer and float results stay distinguishable.
func Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.Trunc(x) == x && !math.IsInf(x, 0) && math.Abs(x) < 1e16 {
			return strconv.FormatFloat(x, 'f', 1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	}
	return fmt.Sprintf("%v", v)
}

// typeName names a value's type in error messages.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	}
	return fmt.Sprintf("%T", v)
}

func isNumber(v Value) bool {
	switch v.(type) {
	case int64, float64:
		return true
	}
	return false
}

func toFloat(v Value) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

// applyBinary evaluates a binary operator. Arithmetic promotes to float64
// when either operand is a float; division always yields a float. Mixing
// strings and numbers in arithmetic is an error, not a coercion.
func applyBinary(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return arith(op, left, right)
	case "-", "*", "/", "%":
		return arith(op, left, right)
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "<", "<=", ">", ">=":
		return compare(op, left, right)
	case "and":
		return Truthy(left) && Truthy(right), nil
	case "or":
		return Truthy(left) || Truthy(right), nil
	}
	return nil, fmt.Errorf("unknown binary operator %q", op)
}

func arith(op string, left, right Value) (Value, error) {
	if !isNumber(left) || !isNumber(right) {
		return nil, fmt.Errorf("unsupported operand types for %s: %s and %s",
			op, typeName(left), typeName(right))
	}

	if op == "/" {
		if toFloat(right) == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return toFloat(left) / toFloat(right), nil
	}

	li, lInt := left.(int64)
	ri, rInt := right.(int64)
	if lInt && rInt {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "%":
			if ri == 0 {
				return nil, fmt.Errorf("modulo by zero")
			}
			return li % ri, nil
		}
	}

	lf, rf := toFloat(left), toFloat(right)
	switch op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "%":
		if rf == 0 {
			return nil, fmt.Errorf("modulo by zero")
		}
		return math.Mod(lf, rf), nil
	}
	return nil, fmt.Errorf("unknown arithmetic operator %q", op)
}

// equal compares across numeric types by value, everything else by type
// and value. A string never equals a number.
func equal(left, right Value) bool {
	if isNumber(left) && isNumber(right) {
		return toFloat(left) == toFloat(right)
	}
	return left == right
}

func compare(op string, left, right Value) (Value, error) {
	var cmp int
	switch {
	case isNumber(left) && isNumber(right):
		lf, rf := toFloat(left), toFloat(right)
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	default:
		ls, lok := left.(string)
		rs, rok := right.(string)
		if !lok || !rok {
			return nil, fmt.Errorf("cannot compare %s and %s", typeName(left), typeName(right))
		}
		switch {
		case ls < rs:
			cmp = -1
		case ls > rs:
			cmp = 1
		}
	}

	switch op {
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	}
	return nil, fmt.Errorf("unknown comparison operator %q", op)
}

// applyUnary evaluates a unary operator.
func applyUnary(op string, operand Value) (Value, error) {
	switch op {
	case "-":
		switch x := operand.(type) {
		case int64:
			return -x, nil
		case float64:
			return -x, nil
		}
		return nil, fmt.Errorf("unsupported operand type for -: %s", typeName(operand))
	case "not":
		return !Truthy(operand), nil
	}
	return nil, fmt.Errorf("unknown unary operator %q", op)
}
