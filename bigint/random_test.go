package bigint_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shieldcrypt/paillier/bigint"
)

func TestRandBytesSync(t *testing.T) {
	bz, err := bigint.RandBytesSync(32)
	assert.NoError(t, err)
	assert.Len(t, bz, 32)

	_, err = bigint.RandBytesSync(0)
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestRandBytesAsync(t *testing.T) {
	out, errCh := bigint.RandBytes(context.Background(), 16)
	select {
	case bz := <-out:
		assert.Len(t, bz, 16)
	case err := <-errCh:
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRandBitsExactLength(t *testing.T) {
	for _, bits := range []int{1, 7, 8, 9, 64, 257} {
		v, err := bigint.RandBits(bits, true)
		assert.NoError(t, err)
		assert.Equal(t, bits, v.BitLen(), "forceTop should yield exact bit length %d", bits)
		assert.True(t, v.Cmp(new(big.Int).Lsh(big.NewInt(1), uint(bits))) < 0)
	}
}

func TestRandBitsWithoutForceTop(t *testing.T) {
	v, err := bigint.RandBits(16, false)
	assert.NoError(t, err)
	assert.True(t, v.BitLen() <= 16)
}

func TestRandBitsInvalidArgument(t *testing.T) {
	_, err := bigint.RandBits(0, false)
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestRandBetweenRange(t *testing.T) {
	min, max := big.NewInt(1), big.NewInt(10)
	for i := 0; i < 500; i++ {
		v, err := bigint.RandBetween(max, min)
		assert.NoError(t, err)
		assert.True(t, v.Cmp(min) >= 0 && v.Cmp(max) <= 0)
	}
}

func TestRandBetweenInvalidArgument(t *testing.T) {
	_, err := bigint.RandBetween(big.NewInt(1), big.NewInt(5))
	assert.ErrorIs(t, err, bigint.ErrInvalidArgument)
}

func TestRandBetweenFrom1(t *testing.T) {
	v, err := bigint.RandBetweenFrom1(big.NewInt(10))
	assert.NoError(t, err)
	assert.True(t, v.Cmp(big.NewInt(1)) >= 0 && v.Cmp(big.NewInt(10)) <= 0)
}
