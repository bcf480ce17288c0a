package parsec

import (
	"fmt"
	"strconv"
)

// Number parsers. The integer forms fold digits through a Chainer, so they
// run in constant space regardless of how long the digit run is. Overflow
// wraps; parse bounded numbers with Real or a checked Map if that matters.

func digitVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10
	default:
		return -1
	}
}

func baseDigitLabel(base int) string {
	switch base {
	case 10:
		return "digit"
	case 16:
		return "hexadecimal digit"
	case 8:
		return "octal digit"
	case 2:
		return "binary digit"
	default:
		return fmt.Sprintf("base-%d digit", base)
	}
}

func digitInBase(base int) Parser[rune, int] {
	p := Satisfy[rune](func(r rune) bool {
		v := digitVal(r)
		return v >= 0 && v < base
	})
	return Map(p, digitVal).Labelled(baseDigitLabel(base))
}

type intChainer struct {
	base int
	acc  int
}

func (c *intChainer) Apply(d int) { c.acc = c.acc*c.base + d }
func (c *intChainer) Result() int { return c.acc }
func (c *intChainer) OnError()    {}

type longChainer struct {
	base int64
	acc  int64
}

func (c *longChainer) Apply(d int)   { c.acc = c.acc*c.base + int64(d) }
func (c *longChainer) Result() int64 { return c.acc }
func (c *longChainer) OnError()      {}

// UnsignedInt parses one or more digits in the given base (2..36).
func UnsignedInt(base int) Parser[rune, int] {
	checkBase(base)
	d := digitInBase(base)
	return ChainAtLeastOnce(d, func() Chainer[int, int] {
		return &intChainer{base: base}
	})
}

// Int parses an optionally signed run of digits in the given base.
func Int(base int) Parser[rune, int] {
	checkBase(base)
	u := UnsignedInt(base)
	neg := Map(u, func(v int) int { return -v })
	return Bind(numSign(), func(negative bool) Parser[rune, int] {
		if negative {
			return neg
		}
		return u
	}).Labelled("number")
}

// UnsignedLong and Long are the int64 forms for inputs whose digit runs
// exceed the platform int.

// UnsignedLong parses one or more digits in the given base into an int64.
func UnsignedLong(base int) Parser[rune, int64] {
	checkBase(base)
	d := digitInBase(base)
	return ChainAtLeastOnce(d, func() Chainer[int, int64] {
		return &longChainer{base: int64(base)}
	})
}

// Long parses an optionally signed run of digits in the given base into an
// int64.
func Long(base int) Parser[rune, int64] {
	checkBase(base)
	u := UnsignedLong(base)
	neg := Map(u, func(v int64) int64 { return -v })
	return Bind(numSign(), func(negative bool) Parser[rune, int64] {
		if negative {
			return neg
		}
		return u
	}).Labelled("number")
}

var (
	// DecimalNum parses a signed decimal integer.
	DecimalNum = Int(10)
	// HexNum parses a signed hexadecimal integer, without a 0x prefix.
	HexNum = Int(16)
	// OctalNum parses a signed octal integer.
	OctalNum = Int(8)
	// LongNum parses a signed decimal int64.
	LongNum = Long(10)
)

// numSign consumes an optional '-' or '+', reporting whether the number is
// negative.
func numSign() Parser[rune, bool] {
	return OneOf(
		Map(Token('-'), func(rune) bool { return true }),
		Map(Token('+'), func(rune) bool { return false }),
		Return[rune](false),
	)
}

func checkBase(base int) {
	if base < 2 || base > 36 {
		panic("parsec: number base out of range")
	}
}

// Real parses a floating point literal: an optional sign, a mantissa with
// an optional fractional part, and an optional exponent. A decimal point
// must be followed by at least one digit.
var Real = realParser()

func realParser() Parser[rune, float64] {
	digit := Satisfy[rune](func(r rune) bool { return r >= '0' && r <= '9' })
	digits := digit.SkipAtLeastOnce()
	signless := OneOf(
		Token('-').IgnoreResult(),
		Token('+').IgnoreResult(),
		Return[rune](Unit{}),
	)
	frac := Then(Token('.'), digits)
	fracOpt := OneOf(frac, Return[rune](Unit{}))
	mantissa := OneOf(
		Then(digits, fracOpt),
		frac,
	)
	exponent := Then(OneOf(Token('e'), Token('E')), Then(signless, digits))
	expOpt := OneOf(exponent, Return[rune](Unit{}))
	syntax := Then(signless, Then(mantissa, expOpt))
	return Bind(MatchedString(syntax), func(text string) Parser[rune, float64] {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return FailWith[rune, float64]("malformed real number")
		}
		return Return[rune](f)
	}).Labelled("real number")
}
