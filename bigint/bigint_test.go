package bigint_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shieldcrypt/paillier/bigint"
)

func b(i int64) *big.Int { return big.NewInt(i) }

func TestAbs(t *testing.T) {
	assert.Equal(t, b(5), bigint.Abs(b(-5)))
	assert.Equal(t, b(5), bigint.Abs(b(5)))
	assert.Equal(t, b(0), bigint.Abs(b(0)))
}

func TestBitLength(t *testing.T) {
	assert.Equal(t, 1, bigint.BitLength(b(1)))
	assert.Equal(t, 3, bigint.BitLength(b(5)))
	assert.Equal(t, 0, bigint.BitLength(b(0)))
}

func TestGcd(t *testing.T) {
	assert.Equal(t, b(6), bigint.Gcd(b(54), b(24)))
	assert.Equal(t, b(5), bigint.Gcd(b(5), b(0)))
	assert.Equal(t, b(0), bigint.Gcd(b(0), b(0)))
	assert.Equal(t, b(1), bigint.Gcd(b(17), b(13)))
}

func TestEGcd(t *testing.T) {
	g, x, y, err := bigint.EGcd(b(35), b(15))
	assert.NoError(t, err)
	assert.Equal(t, b(5), g)
	// a*x + b*y == g
	lhs := new(big.Int).Add(new(big.Int).Mul(b(35), x), new(big.Int).Mul(b(15), y))
	assert.Equal(t, 0, lhs.Cmp(g))
}

func TestEGcdInvalidArgument(t *testing.T) {
	_, _, _, err := bigint.EGcd(b(-1), b(5))
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)

	_, _, _, err = bigint.EGcd(b(5), b(0))
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestLcm(t *testing.T) {
	assert.Equal(t, b(0), bigint.Lcm(b(0), b(0)))
	assert.Equal(t, b(12), bigint.Lcm(b(4), b(6)))
}

func TestToZn(t *testing.T) {
	v, err := bigint.ToZn(b(-1), b(5))
	assert.NoError(t, err)
	assert.Equal(t, b(4), v)

	_, err = bigint.ToZn(b(1), b(0))
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestModInv(t *testing.T) {
	for _, tc := range []struct{ a, n, want int64 }{
		{3, 11, 4},
		{10, 17, 12},
	} {
		v, err := bigint.ModInv(b(tc.a), b(tc.n))
		assert.NoError(t, err)
		assert.Equal(t, b(tc.want), v)
		// modInv law: (a * modInv(a, n)) mod n == 1
		check := new(big.Int).Mod(new(big.Int).Mul(b(tc.a), v), b(tc.n))
		assert.Equal(t, 0, check.Cmp(b(1)))
	}
}

func TestModInvNoInverse(t *testing.T) {
	_, err := bigint.ModInv(b(6), b(9))
	assert.ErrorIs(t, err, bigint.ErrNoInverse)

	_, err = bigint.ModInv(b(0), b(9))
	assert.ErrorIs(t, err, bigint.ErrNoInverse)
}

func TestModPow(t *testing.T) {
	// modPow(a, 0, n) == 1 mod n
	v, err := bigint.ModPow(b(7), b(0), b(13))
	assert.NoError(t, err)
	assert.Equal(t, b(1), v)

	// modPow(a, 1, n) == a mod n
	v, err = bigint.ModPow(b(7), b(1), b(13))
	assert.NoError(t, err)
	assert.Equal(t, b(7), v)

	// modPow(a, b+c, n) == modPow(a,b,n) * modPow(a,c,n) mod n
	ab, _ := bigint.ModPow(b(5), b(3), b(101))
	ac, _ := bigint.ModPow(b(5), b(4), b(101))
	abc, _ := bigint.ModPow(b(5), b(7), b(101))
	product := new(big.Int).Mod(new(big.Int).Mul(ab, ac), b(101))
	assert.Equal(t, 0, product.Cmp(abc))
}

func TestModPowNegativeExponent(t *testing.T) {
	v, err := bigint.ModPow(b(3), b(-1), b(11))
	assert.NoError(t, err)
	// 3 * 4 = 12 = 1 mod 11
	assert.Equal(t, b(4), v)
}

func TestModPowZeroModulus(t *testing.T) {
	_, err := bigint.ModPow(b(2), b(3), b(0))
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}
