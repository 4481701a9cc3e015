// Package number implements the core's integer type: small-path fast
// arithmetic, an arbitrary-precision fallback, lossy conversion to
// floating point, total comparison across both representations, and
// parsing from a string with a radix. The teacher repo pulls in
// math/big for its own integer literals (internal/lexer); this package
// is a thin wrapper rather than a reimplementation of big-integer
// arithmetic, which is commodity functionality the standard library
// already gets right.
package number

import "math/big"

// smallBound is the magnitude under which values stay on the int64 fast
// path. Arithmetic that would overflow it promotes to big.Int.
const smallBound = 1<<62 - 1

// Int is an arbitrary-precision integer that stays on a cheap int64
// representation while values are small.
type Int struct {
	small   int64
	big     *big.Int // non-nil only once a value has left the small path
	isSmall bool
}

// FromInt64 constructs a small-path Int.
func FromInt64(v int64) Int { return Int{small: v, isSmall: true} }

// FromBigInt constructs an Int from a big.Int, demoting to the small
// path when the value fits.
func FromBigInt(v *big.Int) Int {
	if v.IsInt64() {
		iv := v.Int64()
		if iv > -smallBound && iv < smallBound {
			return FromInt64(iv)
		}
	}
	return Int{big: new(big.Int).Set(v)}
}

// Parse parses s in the given radix (2-36). Matches the contract's
// "parse from string with radix".
func Parse(s string, radix int) (Int, bool) {
	v := new(big.Int)
	_, ok := v.SetString(s, radix)
	if !ok {
		return Int{}, false
	}
	return FromBigInt(v), true
}

func (n Int) asBig() *big.Int {
	if n.isSmall {
		return big.NewInt(n.small)
	}
	return n.big
}

// Add returns n+m, staying on the small path when both operands and the
// result fit.
func (n Int) Add(m Int) Int {
	if n.isSmall && m.isSmall {
		r := n.small + m.small
		// overflow check: if signs of operands match but differ from
		// result, we overflowed.
		if (n.small >= 0) == (m.small >= 0) && (r >= 0) != (n.small >= 0) {
			return FromBigInt(new(big.Int).Add(n.asBig(), m.asBig()))
		}
		if r > -smallBound && r < smallBound {
			return FromInt64(r)
		}
		return FromBigInt(new(big.Int).Add(n.asBig(), m.asBig()))
	}
	return FromBigInt(new(big.Int).Add(n.asBig(), m.asBig()))
}

// Sub returns n-m.
func (n Int) Sub(m Int) Int {
	return n.Add(m.Neg())
}

// Neg returns -n.
func (n Int) Neg() Int {
	if n.isSmall && n.small != -1<<63 {
		return FromInt64(-n.small)
	}
	return FromBigInt(new(big.Int).Neg(n.asBig()))
}

// Mul returns n*m. Small-path operands whose product might overflow are
// conservatively promoted through big.Int, then demoted back down if the
// result still fits (FromBigInt handles the demotion).
func (n Int) Mul(m Int) Int {
	if n.isSmall && m.isSmall {
		const halfBound = 1 << 31
		if n.small > -halfBound && n.small < halfBound && m.small > -halfBound && m.small < halfBound {
			return FromInt64(n.small * m.small)
		}
	}
	return FromBigInt(new(big.Int).Mul(n.asBig(), m.asBig()))
}

// Cmp provides total ordering across both representations.
func (n Int) Cmp(m Int) int {
	if n.isSmall && m.isSmall {
		switch {
		case n.small < m.small:
			return -1
		case n.small > m.small:
			return 1
		default:
			return 0
		}
	}
	return n.asBig().Cmp(m.asBig())
}

// Float64 is the lossy conversion to floating point required by §9.
func (n Int) Float64() float64 {
	if n.isSmall {
		return float64(n.small)
	}
	f := new(big.Float).SetInt(n.big)
	v, _ := f.Float64()
	return v
}

// String renders the decimal form.
func (n Int) String() string {
	if n.isSmall {
		return big.NewInt(n.small).String()
	}
	return n.big.String()
}

// IsZero reports whether n is the additive identity.
func (n Int) IsZero() bool {
	if n.isSmall {
		return n.small == 0
	}
	return n.big.Sign() == 0
}
