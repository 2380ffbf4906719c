package paillier

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/shieldcrypt/paillier/bigint"
)

// GetRandomFactor recovers the randomness r used to produce ciphertext
// c = g^m * r^n mod n², for a key using the simple generator (g = n+1)
// whose primes p and q are both present. It fails with ErrInvalidState
// otherwise.
func (priv *PrivateKey) GetRandomFactor(c *big.Int) (*big.Int, error) {
	pub := priv.PublicKey
	if !pub.isSimpleVariant() {
		return nil, errors.Wrap(ErrInvalidState, "GetRandomFactor: requires the simple generator g = n+1")
	}
	if priv.P == nil || priv.Q == nil {
		return nil, errors.Wrap(ErrInvalidState, "GetRandomFactor: requires both p and q")
	}

	m, err := priv.Decrypt(c)
	if err != nil {
		return nil, errors.Wrap(err, "GetRandomFactor: decrypt failed")
	}

	phi := new(big.Int).Mul(
		new(big.Int).Sub(priv.P, one),
		new(big.Int).Sub(priv.Q, one),
	)
	nInvModPhi, err := bigint.ModInv(pub.N, phi)
	if err != nil {
		return nil, errors.Wrap(err, "GetRandomFactor: n has no inverse mod phi(n)")
	}

	n2 := pub.NSquare
	mN := bigint.NewModInt(n2).Mul(m, pub.N)
	oneMinusMN := bigint.NewModInt(n2).Sub(one, mN)
	c1 := bigint.NewModInt(n2).Mul(c, oneMinusMN)

	r, err := bigint.ModPow(c1, nInvModPhi, pub.N)
	if err != nil {
		return nil, errors.Wrap(err, "GetRandomFactor: final exponentiation failed")
	}
	return r, nil
}
