package paillier

import "github.com/pkg/errors"

// ErrInvalidState is returned by operations whose preconditions on the
// key's shape are violated: GetRandomFactor called on a key that
// doesn't use the simple generator (g = n+1), or whose p/q primes are
// absent.
var ErrInvalidState = errors.New("paillier: invalid key state for this operation")

// errDegenerateKey signals that a generator g yielded a non-invertible
// mu. When KeysFromPrimes draws g itself it retries with a fresh g on
// this error; when the caller supplied g, it is returned wrapped.
var errDegenerateKey = errors.New("paillier: degenerate generator, mu not invertible")

// maxGeneratorRetries bounds the generator-retry loop in the general
// variant so a run of bad luck can't spin forever.
const maxGeneratorRetries = 64
