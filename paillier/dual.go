package paillier

import (
	"math/big"

	"github.com/shieldcrypt/paillier/bigint"
)

// GenerateDualG draws r uniformly in [1, n1) until it is coprime to
// BOTH n1 and n2, for use as a generator shared across two
// independently generated key pairs in cross-key homomorphic
// composition. A generator that divides either modulus is degenerate
// under that key, so both gcd checks must pass together, not either
// alone.
func GenerateDualG(n1, n2 *big.Int) (*big.Int, error) {
	n1Minus1 := new(big.Int).Sub(n1, one)
	for {
		r, err := bigint.RandBetween(n1Minus1, one)
		if err != nil {
			return nil, err
		}
		if bigint.Gcd(r, n1).Cmp(one) == 0 && bigint.Gcd(r, n2).Cmp(one) == 0 {
			return r, nil
		}
	}
}

// MultiplyOtherN2 returns c^k mod n2, where n2 is an externally
// supplied modulus rather than the key's own cached n². It is used to
// interpret or combine a ciphertext under a different key's modulus,
// typically together with GenerateDualG.
func MultiplyOtherN2(c, k, n2 *big.Int) (*big.Int, error) {
	return bigint.ModPow(c, k, n2)
}
