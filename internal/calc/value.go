package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// maxIntDigits bounds integer literals and printed integer results.
	maxIntDigits = 4300
	// maxPowBits bounds the size of an integer power before it is computed.
	maxPowBits = 1 << 20
)

// Value is an arithmetic value: an arbitrary precision integer or a double.
type Value struct {
	isFloat bool
	i       *big.Int
	f       float64
}

func intValue(i *big.Int) Value { return Value{i: i} }

func floatValue(f float64) Value { return Value{isFloat: true, f: f} }

// IsFloat reports whether v holds a float.
func (v Value) IsFloat() bool { return v.isFloat }

// Float64 converts v to a float, failing when an integer is too large.
func (v Value) Float64() (float64, error) {
	if v.isFloat {
		return v.f, nil
	}
	f, _ := new(big.Float).SetInt(v.i).Float64()
	if math.IsInf(f, 0) {
		return 0, ErrOverflow
	}
	return f, nil
}

// String renders v the way the calculator displays results.
func (v Value) String() string {
	if v.isFloat {
		return formatFloat(v.f)
	}
	return v.i.String()
}

func (v Value) format() (string, error) {
	s := v.String()
	if !v.isFloat && len(strings.TrimPrefix(s, "-")) > maxIntDigits {
		return "", ErrOverflow
	}
	return s, nil
}

// formatFloat prints the shortest representation that round-trips, with
// at least one fractional digit, switching to exponent form outside
// 1e-4 <= |f| < 1e16.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expStr)

	neg := strings.HasPrefix(mant, "-")
	mant = strings.TrimPrefix(mant, "-")
	digits := strings.Replace(mant, ".", "", 1)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	switch {
	case exp < -4 || exp >= 16:
		b.WriteString(digits[:1])
		if len(digits) > 1 {
			b.WriteByte('.')
			b.WriteString(digits[1:])
		}
		sign := '+'
		if exp < 0 {
			sign = '-'
			exp = -exp
		}
		b.WriteByte('e')
		b.WriteRune(sign)
		if exp < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(exp))
	case exp < 0:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -exp-1))
		b.WriteString(digits)
	default:
		intLen := exp + 1
		if len(digits) <= intLen {
			b.WriteString(digits)
			b.WriteString(strings.Repeat("0", intLen-len(digits)))
			b.WriteString(".0")
		} else {
			b.WriteString(digits[:intLen])
			b.WriteByte('.')
			b.WriteString(digits[intLen:])
		}
	}
	return b.String()
}

func promote(x, y Value) (float64, float64, error) {
	a, err := x.Float64()
	if err != nil {
		return 0, 0, err
	}
	b, err := y.Float64()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func negate(x Value) Value {
	if x.isFloat {
		return floatValue(-x.f)
	}
	return intValue(new(big.Int).Neg(x.i))
}

func add(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat {
		return intValue(new(big.Int).Add(x.i, y.i)), nil
	}
	a, b, err := promote(x, y)
	if err != nil {
		return Value{}, err
	}
	return floatValue(a + b), nil
}

func sub(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat {
		return intValue(new(big.Int).Sub(x.i, y.i)), nil
	}
	a, b, err := promote(x, y)
	if err != nil {
		return Value{}, err
	}
	return floatValue(a - b), nil
}

func mul(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat {
		if x.i.BitLen()+y.i.BitLen() > maxPowBits {
			return Value{}, ErrOverflow
		}
		return intValue(new(big.Int).Mul(x.i, y.i)), nil
	}
	a, b, err := promote(x, y)
	if err != nil {
		return Value{}, err
	}
	return floatValue(a * b), nil
}

// trueDiv always produces a float, rounded once from the exact quotient
// when both operands are integers.
func trueDiv(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat {
		if y.i.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		f, _ := new(big.Rat).SetFrac(x.i, y.i).Float64()
		if math.IsInf(f, 0) {
			return Value{}, ErrOverflow
		}
		return floatValue(f), nil
	}
	a, b, err := promote(x, y)
	if err != nil {
		return Value{}, err
	}
	if b == 0 {
		return Value{}, ErrDivisionByZero
	}
	return floatValue(a / b), nil
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat {
		if y.i.Sign() == 0 {
			return Value{}, ErrDivisionByZero
		}
		q, m := new(big.Int).QuoRem(x.i, y.i, new(big.Int))
		if m.Sign() != 0 && m.Sign() != y.i.Sign() {
			q.Sub(q, big.NewInt(1))
		}
		return intValue(q), nil
	}
	a, b, err := promote(x, y)
	if err != nil {
		return Value{}, err
	}
	if b == 0 {
		return Value{}, ErrDivisionByZero
	}
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div--
	}
	if div == 0 {
		return floatValue(math.Copysign(0, a/b)), nil
	}
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor++
	}
	return floatValue(floor), nil
}

func pow(x, y Value) (Value, error) {
	if !x.isFloat && !y.isFloat && y.i.Sign() >= 0 {
		return intPow(x.i, y.i)
	}
	a, b, err := promote(x, y)
	if err != nil {
		return Value{}, err
	}
	return floatPow(a, b)
}

func intPow(base, exp *big.Int) (Value, error) {
	switch {
	case exp.Sign() == 0:
		return intValue(big.NewInt(1)), nil
	case base.Sign() == 0:
		return intValue(big.NewInt(0)), nil
	case base.CmpAbs(big.NewInt(1)) == 0:
		if base.Sign() < 0 && exp.Bit(0) == 1 {
			return intValue(big.NewInt(-1)), nil
		}
		return intValue(big.NewInt(1)), nil
	}
	if !exp.IsInt64() || exp.Int64() > maxPowBits {
		return Value{}, ErrOverflow
	}
	if int64(base.BitLen()-1)*exp.Int64() > maxPowBits {
		return Value{}, ErrOverflow
	}
	return intValue(new(big.Int).Exp(base, exp, nil)), nil
}

func floatPow(a, b float64) (Value, error) {
	if a == 0 && b < 0 {
		return Value{}, ErrDivisionByZero
	}
	// A negative base with a fractional exponent has a complex result.
	if a < 0 && b != math.Trunc(b) && !math.IsInf(b, 0) {
		return Value{}, ErrUnsupported
	}
	r := math.Pow(a, b)
	if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return Value{}, ErrOverflow
	}
	return floatValue(r), nil
}
