// Package paillier implements the Paillier additively-homomorphic
// public-key cryptosystem: key generation from cryptographically
// strong probable primes, encryption and decryption, the scheme's
// homomorphic operations, and, under the simple-generator variant,
// recovery of the encryption randomness.
//
// Generalized from a fixed g=N+1 scheme to a simple/general generator
// variant split and rebuilt on this module's own bigint/primality
// layers instead of math/big's built-in Exp/GCD/ModInverse and
// rand.Prime.
package paillier

import (
	"math/big"

	"github.com/shieldcrypt/paillier/bigint"
)

var one = big.NewInt(1)

// PublicKey is the immutable triple (n, g, n²). NSquare is cached at
// construction time and never recomputed.
type PublicKey struct {
	N       *big.Int
	G       *big.Int
	NSquare *big.Int
}

// PrivateKey is the immutable quintuple (lambda, mu, publicKey, p, q).
// P and Q are optional: a key reconstructed without its primes leaves
// them nil, which is enough for Decrypt/Addition/Multiply but not for
// GetRandomFactor.
type PrivateKey struct {
	PublicKey *PublicKey
	Lambda    *big.Int
	Mu        *big.Int
	P         *big.Int
	Q         *big.Int
}

// KeyPair is an immutable pair whose PrivateKey.PublicKey is identical
// to (not a copy of) PublicKey.
type KeyPair struct {
	PublicKey  *PublicKey
	PrivateKey *PrivateKey
}

func newPublicKey(n, g *big.Int) *PublicKey {
	return &PublicKey{
		N:       n,
		G:       g,
		NSquare: new(big.Int).Mul(n, n),
	}
}

// BitLength returns the declared key size: the bit length of n.
func (pub *PublicKey) BitLength() int {
	return bigint.BitLength(pub.N)
}

// L computes L(x) = (x-1)/n, defined for x ≡ 1 (mod n).
func L(x, n *big.Int) *big.Int {
	t := new(big.Int).Sub(x, one)
	return t.Div(t, n)
}

// isSimpleVariant reports whether pub uses g = n+1, the variant
// GetRandomFactor requires.
func (pub *PublicKey) isSimpleVariant() bool {
	gamma := new(big.Int).Add(pub.N, one)
	return pub.G.Cmp(gamma) == 0
}
