package primality

import (
	"context"
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/shieldcrypt/paillier/bigint"
)

// ErrGeneratorCancelled is returned from GenerateConcurrent when the
// search was cancelled via ctx before any worker found a prime.
var ErrGeneratorCancelled = errors.New("primality: generator work cancelled")

// Generate returns a probable prime of exactly `bits` bits, drawing
// candidates one at a time in a single worker goroutine and blocking
// until it finishes. It is GenerateConcurrent with concurrency 1.
//
// It fails with ErrInvalidArgument when bits < 1.
func Generate(bits, iterations int) (*big.Int, error) {
	return GenerateConcurrent(context.Background(), bits, iterations, 1)
}

// GenerateConcurrent returns a probable prime of exactly `bits` bits.
// It fans candidate draws out across `concurrency` worker goroutines
// and resolves with the first one certified prime, cancelling the rest.
//
// It fails with ErrInvalidArgument when bits < 1 or concurrency < 1.
func GenerateConcurrent(ctx context.Context, bits, iterations, concurrency int) (*big.Int, error) {
	if bits < 1 {
		return nil, errors.Wrapf(bigint.ErrInvalidArgument, "Generate: bits must be >= 1, got %d", bits)
	}
	if concurrency < 1 {
		return nil, errors.Wrapf(bigint.ErrInvalidArgument, "Generate: concurrency must be >= 1, got %d", concurrency)
	}

	resultCh := make(chan *big.Int, concurrency)
	errCh := make(chan error, concurrency)
	wg := &sync.WaitGroup{}

	workerCtx, cancel := context.WithCancel(ctx)
	defer wg.Wait()
	defer cancel()

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go searchForPrime(workerCtx, wg, resultCh, errCh, bits, iterations)
	}

	select {
	case result := <-resultCh:
		return result, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ErrGeneratorCancelled
	}
}

// searchForPrime repeatedly draws a forced-length odd candidate and
// tests it, sending the first probable prime found on resultCh and
// returning as soon as ctx is cancelled by a sibling worker's success.
func searchForPrime(ctx context.Context, wg *sync.WaitGroup, resultCh chan<- *big.Int, errCh chan<- error, bits, iterations int) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		candidate, err := bigint.RandBits(bits, true)
		if err != nil {
			select {
			case errCh <- err:
			case <-ctx.Done():
			}
			return
		}
		candidate.SetBit(candidate, 0, 1) // force odd

		ok, err := IsProbablyPrime(candidate, iterations)
		if err != nil {
			select {
			case errCh <- err:
			case <-ctx.Done():
			}
			return
		}
		if ok {
			select {
			case resultCh <- candidate:
			case <-ctx.Done():
			}
			return
		}
	}
}
