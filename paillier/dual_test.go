package paillier_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldcrypt/paillier/bigint"
	"github.com/shieldcrypt/paillier/paillier"
)

// generateDualG applied to two n's with a shared small factor must not
// return a value sharing that factor with either modulus.
func TestGenerateDualGAvoidsSharedFactor(t *testing.T) {
	n1 := b(3 * 11) // shares factor 3 with n2
	n2 := b(3 * 17)

	for i := 0; i < 50; i++ {
		r, err := paillier.GenerateDualG(n1, n2)
		require.NoError(t, err)
		assert.Equal(t, b(1), bigint.Gcd(r, n1))
		assert.Equal(t, b(1), bigint.Gcd(r, n2))
	}
}

func TestMultiplyOtherN2(t *testing.T) {
	kp1, err := paillier.KeysFromPrimesSimple(b(11), b(13))
	require.NoError(t, err)
	kp2, err := paillier.KeysFromPrimesSimple(b(17), b(19))
	require.NoError(t, err)

	c, err := kp1.PublicKey.Encrypt(b(7), b(2))
	require.NoError(t, err)

	// Reinterpreting c under kp2's modulus is just exponentiation under
	// an externally supplied n^2; it should match Multiply when that
	// modulus happens to be the key's own.
	viaMultiply, err := kp1.PublicKey.Multiply(c, b(3))
	require.NoError(t, err)
	viaOtherN2, err := paillier.MultiplyOtherN2(c, b(3), kp1.PublicKey.NSquare)
	require.NoError(t, err)
	assert.Equal(t, 0, viaMultiply.Cmp(viaOtherN2))

	// Exercises the externally supplied modulus path against a
	// genuinely different n^2.
	_, err = paillier.MultiplyOtherN2(c, b(3), kp2.PublicKey.NSquare)
	require.NoError(t, err)
}

func TestGenerateDualGInvalidArgument(t *testing.T) {
	_, err := paillier.GenerateDualG(b(1), b(5))
	assert.Error(t, err)
}
