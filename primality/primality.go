// Package primality implements probabilistic primality testing
// (trial division against small primes followed by Miller–Rabin, per
// FIPS 186-4 C.3.1) and, in generate.go, prime generation with a
// concurrent worker pool.
//
// The trial-division table is built once from github.com/otiai10/primes
// rather than hand-rolling a sieve here.
package primality

import (
	"math/big"
	"sync"

	"github.com/otiai10/primes"
	"github.com/pkg/errors"

	"github.com/shieldcrypt/paillier/bigint"
)

// DefaultIterations is the default number of Miller–Rabin rounds.
const DefaultIterations = 16

// trialDivisionLimit is chosen so that, once 2 is dropped,
// primes.Until(trialDivisionLimit).List() yields
// exactly the first 250 odd primes (3, 5, ..., 1597).
const trialDivisionLimit = 1597

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)

	smallPrimesOnce sync.Once
	smallPrimes     []*big.Int
)

func smallOddPrimes() []*big.Int {
	smallPrimesOnce.Do(func() {
		all := primes.Until(trialDivisionLimit).List()
		smallPrimes = make([]*big.Int, 0, len(all))
		for _, p := range all {
			if p == 2 {
				continue
			}
			smallPrimes = append(smallPrimes, big.NewInt(p))
		}
	})
	return smallPrimes
}

// IsProbablyPrime reports whether w is prime with a false-positive
// probability of at most 4^-iterations. It first trial-divides w
// against the first 250 odd primes, then runs Miller–Rabin for
// `iterations` rounds (FIPS 186-4 C.3.1). iterations <= 0 defaults to
// DefaultIterations.
func IsProbablyPrime(w *big.Int, iterations int) (bool, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	switch {
	case w.Cmp(two) == 0:
		return true, nil
	case w.Bit(0) == 0, w.Cmp(one) == 0:
		return false, nil
	}

	for _, p := range smallOddPrimes() {
		if w.Cmp(p) == 0 {
			return true, nil
		}
		if new(big.Int).Mod(w, p).Sign() == 0 {
			return false, nil
		}
	}

	return millerRabin(w, iterations)
}

// millerRabin implements the FIPS 186-4 C.3.1 probabilistic primality
// test. w is assumed odd, >= 3, and to have already survived the
// trial-division prefilter.
func millerRabin(w *big.Int, iterations int) (bool, error) {
	wMinus1 := new(big.Int).Sub(w, one)
	wMinus2 := new(big.Int).Sub(w, two)

	// factor w-1 = 2^a * m, m odd
	a := 0
	m := new(big.Int).Set(wMinus1)
	for m.Bit(0) == 0 {
		m.Rsh(m, 1)
		a++
	}

	for i := 0; i < iterations; i++ {
		base, err := bigint.RandBetween(wMinus2, two)
		if err != nil {
			return false, errors.Wrap(err, "millerRabin: failed to draw witness")
		}

		z, err := bigint.ModPow(base, m, w)
		if err != nil {
			return false, errors.Wrap(err, "millerRabin: modPow failed")
		}
		if z.Cmp(one) == 0 || z.Cmp(wMinus1) == 0 {
			continue
		}

		composite := true
		for j := 1; j < a; j++ {
			z.Mod(z.Mul(z, z), w)
			if z.Cmp(wMinus1) == 0 {
				composite = false
				break
			}
			if z.Cmp(one) == 0 {
				return false, nil
			}
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}
