package paillier

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/shieldcrypt/paillier/bigint"
)

// Encrypt returns Enc(m) = g^m * r^n mod n² using the given m and,
// optionally, externally supplied randomness r. When r is omitted, one
// is drawn uniformly in [1, n) and rejected until gcd(r, n) = 1, which
// is equivalent to gcd(r, n²) = 1, so only n needs checking.
//
// m is not range-checked against n; the caller is responsible for
// 0 <= m < n.
func (pub *PublicKey) Encrypt(m *big.Int, r ...*big.Int) (*big.Int, error) {
	var randomness *big.Int
	if len(r) > 0 && r[0] != nil {
		randomness = r[0]
	} else {
		var err error
		randomness, err = randomFactor(pub.N)
		if err != nil {
			return nil, errors.Wrap(err, "Encrypt: failed to draw randomness")
		}
	}

	n2 := bigint.NewModInt(pub.NSquare)
	gm, err := n2.Exp(pub.G, m)
	if err != nil {
		return nil, err
	}
	rn, err := n2.Exp(randomness, pub.N)
	if err != nil {
		return nil, err
	}
	return n2.Mul(gm, rn), nil
}

// randomFactor draws r uniformly in [1, n) with gcd(r, n) = 1 by
// rejection sampling.
func randomFactor(n *big.Int) (*big.Int, error) {
	nMinus1 := new(big.Int).Sub(n, one)
	for {
		r, err := bigint.RandBetween(nMinus1, one)
		if err != nil {
			return nil, err
		}
		if bigint.Gcd(r, n).Cmp(one) == 0 {
			return r, nil
		}
	}
}

// Decrypt returns L(c^lambda mod n²) * mu mod n.
func (priv *PrivateKey) Decrypt(c *big.Int) (*big.Int, error) {
	pub := priv.PublicKey
	u, err := bigint.ModPow(c, priv.Lambda, pub.NSquare)
	if err != nil {
		return nil, errors.Wrap(err, "Decrypt: failed to compute c^lambda mod n^2")
	}
	lc := L(u, pub.N)
	m := bigint.NewModInt(pub.N).Mul(lc, priv.Mu)
	return m, nil
}

// Addition returns the homomorphic sum of k >= 2 ciphertexts:
// c1 * c2 * ... * ck mod n², which decrypts to (m1+...+mk) mod n.
func (pub *PublicKey) Addition(ciphertexts ...*big.Int) (*big.Int, error) {
	if len(ciphertexts) < 2 {
		return nil, errors.Wrapf(bigint.ErrInvalidArgument, "Addition: requires at least 2 ciphertexts, got %d", len(ciphertexts))
	}
	n2 := bigint.NewModInt(pub.NSquare)
	sum := new(big.Int).Set(ciphertexts[0])
	for _, c := range ciphertexts[1:] {
		sum = n2.Mul(sum, c)
	}
	return sum, nil
}

// Multiply returns the pseudo-homomorphic scalar product c^k mod n²,
// which decrypts to (k*m) mod n.
func (pub *PublicKey) Multiply(c, k *big.Int) (*big.Int, error) {
	return bigint.ModPow(c, k, pub.NSquare)
}
