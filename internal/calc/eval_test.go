package calc

import (
	"errors"
	"strings"
	"testing"
)

func TestEvaluateResults(t *testing.T) {
	testCases := []struct {
		expr string
		want string
	}{
		{"2+2", "4"},
		{"(3+4)*2", "14"},
		{"3-5", "-2"},
		{"2 + 3", "5"},
		{"2++2", "4"},
		{"2--2", "4"},
		{"1/2", "0.5"},
		{"4/2", "2.0"},
		{"1/3", "0.3333333333333333"},
		{"0.1+0.2", "0.30000000000000004"},
		{"1.5*2", "3.0"},
		{"123.456", "123.456"},
		{"100.0", "100.0"},
		{"-0.0", "-0.0"},
		{".5+.5", "1.0"},
		{"5.", "5.0"},
		{"00", "0"},
		{"000", "0"},
		{"00.5", "0.5"},
		{"7//2", "3"},
		{"-7//2", "-4"},
		{"7.0//2", "3.0"},
		{"-7.0//2", "-4.0"},
		{"2**10", "1024"},
		{"2**-1", "0.5"},
		{"-2**2", "-4"},
		{"(-2)**2", "4"},
		{"2**3**2", "512"},
		{"10**16/1", "1e+16"},
		{"1/10000", "0.0001"},
		{"1/100000", "1e-05"},
		{"1e+16", "1e+16"},
		{"1e+16+1", "1e+16"},
		{"1.5e-05*2", "3e-05"},
		{"1e5", "100000.0"},
		{"2E3", "2000.0"},
		{"00e0", "0.0"},
		{"1e400", "inf"},
		{"07e1", "70.0"},
		{"10**400/10**399", "10.0"},
		{"10**5000//10**4990", "10000000000"},
		{"99999999999999999999*99999999999999999999", strings.Repeat("9", 19) + "8" + strings.Repeat("0", 19) + "1"},
		{strings.Repeat("9", 400) + ".0", "inf"},
	}

	for _, tc := range testCases {
		got, err := Evaluate(tc.expr)
		if err != nil {
			t.Errorf("Evaluate(%q): unexpected error: %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Evaluate(%q) = %q, want %q", tc.expr, got, tc.want)
		}
	}
}

func TestEvaluateFailures(t *testing.T) {
	testCases := []struct {
		expr string
		want error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"1/0", ErrDivisionByZero},
		{"1//0", ErrDivisionByZero},
		{"1.0/0", ErrDivisionByZero},
		{"0**-1", ErrDivisionByZero},
		{"2+", ErrSyntax},
		{"(", ErrSyntax},
		{")", ErrSyntax},
		{"()", ErrSyntax},
		{"(1+2", ErrSyntax},
		{"2(3)", ErrSyntax},
		{"1.2.3", ErrSyntax},
		{".", ErrSyntax},
		{"007", ErrSyntax},
		{"1e", ErrSyntax},
		{"1e+", ErrSyntax},
		{"1e+-5", ErrSyntax},
		{".e5", ErrSyntax},
		{"2 a", ErrSyntax},
		{"2* *3", ErrSyntax},
		{"ERROR+1", ErrSyntax},
		{"__import__('os')", ErrSyntax},
		{"(-8)**0.5", ErrUnsupported},
		{"10.0**400", ErrOverflow},
		{"2**100000000", ErrOverflow},
		{"10**5000", ErrOverflow},
		{"10**400*1.0", ErrOverflow},
	}

	for _, tc := range testCases {
		got, err := Evaluate(tc.expr)
		if err == nil {
			t.Errorf("Evaluate(%q) = %q, expected error %v", tc.expr, got, tc.want)
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("Evaluate(%q): got error %v, want %v", tc.expr, err, tc.want)
		}
	}
}

func TestEvalErrorOffset(t *testing.T) {
	_, err := Evaluate("1+2)")
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("Expected *EvalError, got %T", err)
	}
	if evalErr.Pos != 3 {
		t.Errorf("Expected offset 3, got %d", evalErr.Pos)
	}
}

func TestParseTree(t *testing.T) {
	testCases := []struct {
		expr string
		want string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"-2**2", "(-(2 ** 2))"},
		{"2**3**2", "(2 ** (3 ** 2))"},
		{"8//3/2", "((8 // 3) / 2)"},
	}

	for _, tc := range testCases {
		n, err := Parse(tc.expr)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.expr, err)
			continue
		}
		if n.String() != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.expr, n.String(), tc.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{4, "4.0"},
		{0.5, "0.5"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1.5e-5, "1.5e-05"},
		{1.2345678901234568e+29, "1.2345678901234568e+29"},
		{-2.5, "-2.5"},
	}

	for _, tc := range testCases {
		if got := formatFloat(tc.in); got != tc.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
