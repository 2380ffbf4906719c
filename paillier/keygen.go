package paillier

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/shieldcrypt/paillier/bigint"
	"github.com/shieldcrypt/paillier/primality"
)

// DefaultBitLength is the default modulus size for GenerateRandomKeys.
const DefaultBitLength = 3072

// defaultMRIterations is the Miller-Rabin round count used while
// searching for the primes p and q.
const defaultMRIterations = primality.DefaultIterations

// GenerateRandomKeysSync is the synchronous entry point: it generates
// two probable primes of the requested sizes, builds n = p*q, and
// constructs the key pair for either the simple (g=n+1) or general
// variant. It fails with bigint.ErrInvalidArgument when bitLength < 4.
func GenerateRandomKeysSync(bitLength int, simpleVariant bool) (*KeyPair, error) {
	if bitLength < 4 {
		return nil, errors.Wrapf(bigint.ErrInvalidArgument, "GenerateRandomKeys: bitLength must be >= 4, got %d", bitLength)
	}

	half := bitLength / 2
	p, q, err := generatePQ(half, bitLength)
	if err != nil {
		return nil, err
	}

	if simpleVariant {
		return KeysFromPrimesSimple(p, q)
	}
	return KeysFromPrimes(p, q, nil)
}

// GenerateRandomKeys is the asynchronous form of GenerateRandomKeysSync:
// identical output distribution, dispatched to a goroutine so the
// caller can interleave other work while the (potentially slow, for
// large bit lengths) prime search runs.
func GenerateRandomKeys(ctx context.Context, bitLength int, simpleVariant bool) (<-chan *KeyPair, <-chan error) {
	out := make(chan *KeyPair, 1)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		kp, err := GenerateRandomKeysSync(bitLength, simpleVariant)
		if err != nil {
			select {
			case errCh <- err:
			case <-ctx.Done():
			}
			return
		}
		select {
		case out <- kp:
		case <-ctx.Done():
		}
	}()
	return out, errCh
}

// generatePQ draws p of pBits+1 bits and q of pBits bits, retrying
// while p == q or the product doesn't land on exactly bitLength bits.
func generatePQ(pBits, bitLength int) (p, q *big.Int, err error) {
	for {
		p, err = primality.GenerateConcurrent(context.Background(), pBits+1, defaultMRIterations, 1)
		if err != nil {
			return nil, nil, err
		}
		q, err = primality.GenerateConcurrent(context.Background(), pBits, defaultMRIterations, 1)
		if err != nil {
			return nil, nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if bigint.BitLength(n) == bitLength {
			return p, q, nil
		}
	}
}

// KeysFromPrimesSimple constructs a key pair from given primes p and q
// using the simple generator g = n+1, with lambda = (p-1)(q-1) and
// mu = lambda^-1 mod n. The simple variant is the only one
// GetRandomFactor can recover randomness under.
func KeysFromPrimesSimple(p, q *big.Int) (*KeyPair, error) {
	n := new(big.Int).Mul(p, q)
	g := new(big.Int).Add(n, one)

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	lambda := new(big.Int).Mul(pMinus1, qMinus1)

	mu, err := bigint.ModInv(lambda, n)
	if err != nil {
		return nil, errors.Wrap(err, "KeysFromPrimesSimple: lambda has no inverse mod n")
	}

	pub := newPublicKey(n, g)
	priv := &PrivateKey{PublicKey: pub, Lambda: lambda, Mu: mu, P: p, Q: q}
	return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// KeysFromPrimes constructs a key pair from given primes p and q. If g
// is nil, a generator is drawn via getGenerator and retried internally
// on a degenerate (non-invertible mu) draw. Bit-length consistency
// between p, q and any caller-supplied expectation is not checked;
// callers are trusted.
func KeysFromPrimes(p, q, g *big.Int) (*KeyPair, error) {
	n := new(big.Int).Mul(p, q)
	n2 := new(big.Int).Mul(n, n)

	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	lambda := bigint.Lcm(pMinus1, qMinus1)

	if g != nil {
		mu, err := muFor(g, lambda, n, n2)
		if err != nil {
			return nil, errors.Wrap(err, "KeysFromPrimes: supplied g is degenerate")
		}
		pub := newPublicKey(n, g)
		priv := &PrivateKey{PublicKey: pub, Lambda: lambda, Mu: mu, P: p, Q: q}
		return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
	}

	for attempt := 0; attempt < maxGeneratorRetries; attempt++ {
		candidate, err := getGenerator(n, n2)
		if err != nil {
			return nil, err
		}
		mu, err := muFor(candidate, lambda, n, n2)
		if errors.Is(err, errDegenerateKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		pub := newPublicKey(n, candidate)
		priv := &PrivateKey{PublicKey: pub, Lambda: lambda, Mu: mu, P: p, Q: q}
		return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
	}
	return nil, errors.New("KeysFromPrimes: exceeded generator retry budget")
}

// muFor computes mu = (L(g^lambda mod n^2))^-1 mod n, reporting
// errDegenerateKey when L(g^lambda mod n^2) has no inverse mod n.
func muFor(g, lambda, n, n2 *big.Int) (*big.Int, error) {
	gLambda, err := bigint.ModPow(g, lambda, n2)
	if err != nil {
		return nil, err
	}
	lg := L(gLambda, n)
	mu, err := bigint.ModInv(lg, n)
	if err != nil {
		return nil, errDegenerateKey
	}
	return mu, nil
}

// getGenerator draws g by sampling alpha, beta uniformly in [1, n) and
// returning ((alpha*n + 1) * beta^n mod n²) mod n². This lands in the
// subgroup of n-th powers times the canonical n+1 factor, yielding an
// element whose order is a multiple of n with overwhelming probability.
func getGenerator(n, n2 *big.Int) (*big.Int, error) {
	nMinus1 := new(big.Int).Sub(n, one)
	alpha, err := bigint.RandBetween(nMinus1, one)
	if err != nil {
		return nil, err
	}
	beta, err := bigint.RandBetween(nMinus1, one)
	if err != nil {
		return nil, err
	}

	an1 := new(big.Int).Add(new(big.Int).Mul(alpha, n), one)
	betaN, err := bigint.ModPow(beta, n, n2)
	if err != nil {
		return nil, err
	}
	g := bigint.NewModInt(n2).Mul(an1, betaN)
	return g, nil
}
