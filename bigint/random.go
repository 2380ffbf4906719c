package bigint

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// RandBytesSync reads k cryptographically secure random bytes from the
// platform CSPRNG. It fails with ErrInvalidArgument when k < 1.
func RandBytesSync(k int) ([]byte, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "RandBytesSync: k must be >= 1, got %d", k)
	}
	bz := make([]byte, k)
	if _, err := io.ReadFull(rand.Reader, bz); err != nil {
		return nil, errors.Wrap(err, "RandBytesSync: entropy read failed")
	}
	return bz, nil
}

// RandBytes is the asynchronous form of RandBytesSync: the read is
// dispatched to its own goroutine and the result or error delivered on
// a channel, so a caller with other work to interleave isn't blocked on
// the CSPRNG read. Cancelling ctx does not abort the underlying read
// (crypto/rand.Read has no cancellation hook) but does let the caller
// stop waiting on the result.
func RandBytes(ctx context.Context, k int) (<-chan []byte, <-chan error) {
	out := make(chan []byte, 1)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		bz, err := RandBytesSync(k)
		if err != nil {
			select {
			case errCh <- err:
			case <-ctx.Done():
			}
			return
		}
		select {
		case out <- bz:
		case <-ctx.Done():
		}
	}()
	return out, errCh
}

// RandBits draws ceil(b/8) random bytes and masks the excess high bits
// of the first byte to zero so exactly b bits of entropy remain. When
// forceTop is true, the most significant bit of the b-bit value is
// forced to 1, guaranteeing the returned integer has bit length exactly
// b. It fails with ErrInvalidArgument when b < 1.
func RandBits(b int, forceTop bool) (*big.Int, error) {
	if b < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "RandBits: b must be >= 1, got %d", b)
	}
	numBytes := (b + 7) / 8
	bz, err := RandBytesSync(numBytes)
	if err != nil {
		return nil, err
	}

	excess := numBytes*8 - b
	if excess > 0 {
		bz[0] &= byte(0xff >> uint(excess))
	}
	if forceTop {
		topBit := byte(1) << uint((8-excess-1)%8)
		bz[0] |= topBit
	}
	return new(big.Int).SetBytes(bz), nil
}

// RandBetween returns a uniform integer in [min, max]. It draws
// candidates of bit length equal to (max-min)'s and rejects any draw
// exceeding that range, which keeps the distribution exactly uniform
// rather than merely approximately so. It fails with ErrInvalidArgument
// when max <= min.
func RandBetween(max, min *big.Int) (*big.Int, error) {
	if max.Cmp(min) <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "RandBetween: max must be > min, got max=%s min=%s", max, min)
	}
	w := new(big.Int).Sub(max, min)
	bits := BitLength(w)
	for {
		r, err := RandBits(bits, false)
		if err != nil {
			return nil, err
		}
		if r.Cmp(w) <= 0 {
			return r.Add(r, min), nil
		}
	}
}

// RandBetweenFrom1 is RandBetween with an implicit min of 1.
func RandBetweenFrom1(max *big.Int) (*big.Int, error) {
	return RandBetween(max, one)
}
