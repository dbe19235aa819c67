// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the declared value type of an argument.
type Kind int

const (
	// KindRaw arguments keep their tokens unconverted. They are registered
	// through Base.AddArg and converted when read with Get.
	KindRaw Kind = iota
	KindFlag
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	// KindChar arguments hold exactly one Unicode character.
	KindChar
	KindStrings
	KindInts
	KindDoubles
)

var kindNames = [...]string{
	KindRaw:     "raw",
	KindFlag:    "flag",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindString:  "string",
	KindChar:    "char",
	KindStrings: "strings",
	KindInts:    "ints",
	KindDoubles: "doubles",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsSequence reports whether arguments of kind k consume every following
// token up to the next registered identifier.
func (k Kind) IsSequence() bool {
	switch k {
	case KindRaw, KindStrings, KindInts, KindDoubles:
		return true
	}
	return false
}

// placeholder is the value hint shown in usage text.
func (k Kind) placeholder() string {
	switch k {
	case KindFlag:
		return ""
	case KindRaw:
		return "<value...>"
	case KindStrings:
		return "<string...>"
	case KindInts:
		return "<int...>"
	case KindDoubles:
		return "<double...>"
	}
	return "<" + k.String() + ">"
}

// Type lists the Go types a typed argument can be declared with.
type Type interface {
	int | int64 | float32 | float64 | string | rune | []string | []int | []float64
}

func kindOf[T Type]() Kind {
	var zero T
	switch any(zero).(type) {
	case int:
		return KindInt
	case int64:
		return KindLong
	case float32:
		return KindFloat
	case float64:
		return KindDouble
	case string:
		return KindString
	case rune:
		return KindChar
	case []string:
		return KindStrings
	case []int:
		return KindInts
	case []float64:
		return KindDoubles
	}
	panic(fmt.Sprintf("argparse: unsupported type %T", zero))
}

// Value holds one resolved argument value. The zero Value is a raw value
// with no tokens.
type Value struct {
	kind  Kind
	num   int64
	real  float64
	str   string
	list  []string
	ints  []int
	reals []float64
}

// FlagValue is the value bound to a flag that was present.
var FlagValue = Value{kind: KindFlag}

// Kind returns the kind the value was converted to.
func (v Value) Kind() Kind { return v.kind }

// Tokens returns the raw tokens of a KindRaw or KindStrings value.
func (v Value) Tokens() []string { return slices.Clone(v.list) }

// String formats the value the way it is shown in usage text.
func (v Value) String() string {
	switch v.kind {
	case KindFlag:
		return "true"
	case KindInt, KindLong:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.real, 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindString:
		return v.str
	case KindChar:
		return string(rune(v.num))
	case KindStrings:
		return strings.Join(v.list, ",")
	case KindInts:
		parts := make([]string, len(v.ints))
		for i, n := range v.ints {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case KindDoubles:
		parts := make([]string, len(v.reals))
		for i, f := range v.reals {
			parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strings.Join(parts, ",")
	}
	return strings.Join(v.list, " ")
}

func valueOf[T Type](x T) Value {
	switch x := any(x).(type) {
	case int:
		return Value{kind: KindInt, num: int64(x)}
	case int64:
		return Value{kind: KindLong, num: x}
	case float32:
		return Value{kind: KindFloat, real: float64(x)}
	case float64:
		return Value{kind: KindDouble, real: x}
	case string:
		return Value{kind: KindString, str: x}
	case rune:
		return Value{kind: KindChar, num: int64(x)}
	case []string:
		return Value{kind: KindStrings, list: slices.Clone(x)}
	case []int:
		return Value{kind: KindInts, ints: slices.Clone(x)}
	case []float64:
		return Value{kind: KindDoubles, reals: slices.Clone(x)}
	}
	panic(fmt.Sprintf("argparse: unsupported type %T", x))
}

// valueAs extracts a T from v. Raw values are converted on the way out;
// typed values must already hold T's kind.
func valueAs[T Type](arg string, v Value) (T, error) {
	var out T
	want := kindOf[T]()
	if v.kind == KindRaw {
		cv, err := convert(arg, want, v.list)
		if err != nil {
			return out, err
		}
		v = cv
	}
	if v.kind != want {
		return out, fmt.Errorf("%w: %s holds %s, not %s", ErrKindMismatch, arg, v.kind, want)
	}
	switch p := any(&out).(type) {
	case *int:
		*p = int(v.num)
	case *int64:
		*p = v.num
	case *float32:
		*p = float32(v.real)
	case *float64:
		*p = v.real
	case *string:
		*p = v.str
	case *rune:
		*p = rune(v.num)
	case *[]string:
		*p = slices.Clone(v.list)
	case *[]int:
		*p = slices.Clone(v.ints)
	case *[]float64:
		*p = slices.Clone(v.reals)
	}
	return out, nil
}

// convert turns raw tokens into a Value of the given kind. Scalar kinds use
// the first token; sequence kinds convert every token.
func convert(arg string, kind Kind, tokens []string) (Value, error) {
	switch kind {
	case KindFlag:
		return FlagValue, nil
	case KindRaw:
		return Value{kind: KindRaw, list: slices.Clone(tokens)}, nil
	case KindStrings:
		return Value{kind: KindStrings, list: slices.Clone(tokens)}, nil
	case KindInts:
		ints := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			n, err := strconv.ParseInt(tok, 10, strconv.IntSize)
			if err != nil {
				return Value{}, &ConversionError{Arg: arg, Token: tok, Kind: kind, Err: err}
			}
			ints = append(ints, int(n))
		}
		return Value{kind: kind, ints: ints}, nil
	case KindDoubles:
		reals := make([]float64, 0, len(tokens))
		for _, tok := range tokens {
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return Value{}, &ConversionError{Arg: arg, Token: tok, Kind: kind, Err: err}
			}
			reals = append(reals, f)
		}
		return Value{kind: kind, reals: reals}, nil
	}

	if len(tokens) == 0 {
		return Value{}, &MissingValueError{Arg: arg}
	}
	tok := tokens[0]
	switch kind {
	case KindString:
		return Value{kind: kind, str: tok}, nil
	case KindChar:
		r, size := utf8.DecodeRuneInString(tok)
		if size == 0 || size != len(tok) || (r == utf8.RuneError && size == 1) {
			return Value{}, &ConversionError{Arg: arg, Token: tok, Kind: kind, Err: errNotChar}
		}
		return Value{kind: kind, num: int64(r)}, nil
	case KindInt, KindLong:
		bits := 64
		if kind == KindInt {
			bits = strconv.IntSize
		}
		n, err := strconv.ParseInt(tok, 10, bits)
		if err != nil {
			return Value{}, &ConversionError{Arg: arg, Token: tok, Kind: kind, Err: err}
		}
		return Value{kind: kind, num: n}, nil
	case KindFloat, KindDouble:
		bits := 64
		if kind == KindFloat {
			bits = 32
		}
		f, err := strconv.ParseFloat(tok, bits)
		if err != nil {
			return Value{}, &ConversionError{Arg: arg, Token: tok, Kind: kind, Err: err}
		}
		return Value{kind: kind, real: f}, nil
	}
	return Value{}, fmt.Errorf("argparse: unknown kind %s", kind)
}

var errNotChar = errors.New("expected exactly one character")

// isNumeric checks if a string is a number (e.g., "10", "-10", "3.14", "-3.14")
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}

	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}

	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
