// Package bigint provides the arbitrary-precision modular arithmetic
// primitives the Paillier scheme is built from: absolute value, bit
// length, binary gcd, iterative extended gcd, lcm, canonical reduction,
// modular inverse, and modular exponentiation.
//
// Every operation here is implemented against the package's own ModPow
// and EGcd rather than delegating to big.Int.Exp/GCD/ModInverse, since
// callers one layer up (primality, paillier) depend on these specific
// algorithms' exact behavior.
package bigint

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// ErrInvalidArgument is returned for malformed inputs: non-positive
// moduli, non-positive operands to EGcd, and similar caller errors.
var ErrInvalidArgument = errors.New("bigint: invalid argument")

// ErrNoInverse is returned by ModInv when a has no inverse modulo n.
var ErrNoInverse = errors.New("bigint: no modular inverse exists")

// Abs returns the mathematical absolute value of a.
func Abs(a *big.Int) *big.Int {
	return new(big.Int).Abs(a)
}

// BitLength returns the number of bits required to represent |a|.
func BitLength(a *big.Int) int {
	return Abs(a).BitLen()
}

// Gcd returns the nonnegative binary gcd of a and b. Gcd(a, 0) = |a|;
// Gcd(0, 0) = 0.
func Gcd(a, b *big.Int) *big.Int {
	a, b = Abs(a), Abs(b)
	if a.Sign() == 0 {
		return b
	}
	if b.Sign() == 0 {
		return a
	}

	shift := 0
	x, y := new(big.Int).Set(a), new(big.Int).Set(b)
	for x.Bit(0) == 0 && y.Bit(0) == 0 {
		x.Rsh(x, 1)
		y.Rsh(y, 1)
		shift++
	}
	for x.Bit(0) == 0 {
		x.Rsh(x, 1)
	}
	for y.Sign() != 0 {
		for y.Bit(0) == 0 {
			y.Rsh(y, 1)
		}
		if x.Cmp(y) > 0 {
			x, y = y, x
		}
		y.Sub(y, x)
	}
	return x.Lsh(x, uint(shift))
}

// EGcd computes, for positive a and b, (g, x, y) such that
// a*x + b*y = g = gcd(a, b), using the iterative (non-recursive) form of
// the extended Euclidean algorithm. It fails with ErrInvalidArgument
// when a <= 0 or b <= 0.
func EGcd(a, b *big.Int) (g, x, y *big.Int, err error) {
	if a.Sign() <= 0 || b.Sign() <= 0 {
		return nil, nil, nil, errors.Wrapf(ErrInvalidArgument, "EGcd requires positive operands, got a=%s b=%s", a, b)
	}

	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := new(big.Int).Set(one), big.NewInt(0)
	oldT, t := big.NewInt(0), new(big.Int).Set(one)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)

		newR := new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldR, r = r, newR

		newS := new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldS, s = s, newS

		newT := new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
		oldT, t = t, newT
	}
	return oldR, oldS, oldT, nil
}

// Lcm returns |a*b| / gcd(a, b); Lcm(0, 0) = 0.
func Lcm(a, b *big.Int) *big.Int {
	if a.Sign() == 0 && b.Sign() == 0 {
		return big.NewInt(0)
	}
	g := Gcd(a, b)
	prod := new(big.Int).Mul(a, b)
	return Abs(prod).Div(Abs(prod), g)
}

// ToZn reduces a to its canonical nonnegative representative in [0, n).
// It fails with ErrInvalidArgument when n <= 0.
func ToZn(a, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "ToZn requires n > 0, got n=%s", n)
	}
	r := new(big.Int).Mod(a, n)
	return r, nil
}

// ModInv returns the inverse of a modulo n, computed via EGcd on
// (toZn(a, n), n). It fails with ErrNoInverse when gcd(a, n) != 1, when
// n <= 0, or when a reduces to 0 mod n.
func ModInv(a, n *big.Int) (*big.Int, error) {
	az, err := ToZn(a, n)
	if err != nil {
		return nil, errors.Wrap(ErrNoInverse, err.Error())
	}
	if az.Sign() == 0 {
		return nil, errors.Wrap(ErrNoInverse, "ModInv: a is 0 mod n")
	}

	g, x, _, err := EGcd(az, n)
	if err != nil {
		return nil, errors.Wrap(ErrNoInverse, err.Error())
	}
	if g.Cmp(one) != 0 {
		return nil, errors.Wrapf(ErrNoInverse, "gcd(a, n) = %s != 1", g)
	}
	inv, _ := ToZn(x, n)
	return inv, nil
}

// ModPow computes a^b mod n by right-to-left square-and-multiply,
// reducing modulo n on every step rather than forming a^b before
// reduction. Negative b is supported by computing the modular inverse
// of a and raising it to |b|. It fails when n == 0.
func ModPow(a, b, n *big.Int) (*big.Int, error) {
	if n.Sign() == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "ModPow: modulus is 0")
	}
	nAbs := Abs(n)
	if nAbs.Cmp(one) == 0 {
		return big.NewInt(0), nil
	}

	base, err := ToZn(a, nAbs)
	if err != nil {
		return nil, err
	}

	exp := b
	if b.Sign() < 0 {
		inv, err := ModInv(base, nAbs)
		if err != nil {
			return nil, err
		}
		base = inv
		exp = Abs(b)
	}

	result := new(big.Int).Set(one)
	baseCopy := new(big.Int).Set(base)
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result.Mod(result.Mul(result, baseCopy), nAbs)
		}
		baseCopy.Mod(baseCopy.Mul(baseCopy, baseCopy), nAbs)
	}
	return result, nil
}

// ModInt is a *big.Int that performs Add/Sub/Mul/Exp with modular
// reduction against a fixed modulus. Exp goes through this package's
// own ModPow so the reduce-every-step invariant holds regardless of
// caller.
type ModInt big.Int

// NewModInt returns a ModInt view over mod.
func NewModInt(mod *big.Int) *ModInt {
	return (*ModInt)(mod)
}

func (mi *ModInt) i() *big.Int {
	return (*big.Int)(mi)
}

// Add returns (x+y) mod m.
func (mi *ModInt) Add(x, y *big.Int) *big.Int {
	r := new(big.Int).Add(x, y)
	return r.Mod(r, mi.i())
}

// Sub returns (x-y) mod m.
func (mi *ModInt) Sub(x, y *big.Int) *big.Int {
	r := new(big.Int).Sub(x, y)
	return r.Mod(r, mi.i())
}

// Mul returns (x*y) mod m.
func (mi *ModInt) Mul(x, y *big.Int) *big.Int {
	r := new(big.Int).Mul(x, y)
	return r.Mod(r, mi.i())
}

// Exp returns x^y mod m via this package's ModPow.
func (mi *ModInt) Exp(x, y *big.Int) (*big.Int, error) {
	return ModPow(x, y, mi.i())
}
