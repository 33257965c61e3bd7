// Package blob reads the binary input that gets embedded.
package blob

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/marcinbor85/gohex"
)

var (
	// ErrStat is returned when the input cannot be stat'ed.
	ErrStat = errors.New("error stat'ing, does the file exist?")
	// ErrAlloc is returned when the input is too large to hold in memory.
	ErrAlloc = errors.New("cannot allocate memory")
	// ErrRead is returned when the input cannot be opened or read in full.
	ErrRead = errors.New("cannot read file")
	// ErrFormat is returned when an Intel HEX input does not parse.
	ErrFormat = errors.New("invalid intel hex file")
)

// ReadFile reads the whole file at path.
// The buffer is sized from a stat of the file and filled by a single read;
// any other byte count is an error.
func ReadFile(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStat, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrRead, path)
	}
	if err := checkSize(fi.Size()); err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	return readExact(f, fi.Size())
}

// checkSize reports ErrAlloc when size cannot be a slice length.
func checkSize(size int64) error {
	if size < 0 || uint64(size) > math.MaxInt {
		return fmt.Errorf("%w: %d bytes", ErrAlloc, size)
	}
	return nil
}

// readExact fills a buffer of size bytes with one Read from r.
// A short read is an error; it is not retried.
func readExact(r io.Reader, size int64) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}
	n, err := r.Read(buf)
	if int64(n) != size {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		return nil, fmt.Errorf("%w: read %d of %d bytes", ErrRead, n, size)
	}
	return buf, nil
}

// ReadIntelHex parses the Intel HEX file at path and returns its data as one
// contiguous image spanning the lowest to the highest written address.
// Gaps between data segments are filled with fill.
func ReadIntelHex(path string, fill byte) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStat, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return []byte{}, nil
	}

	start := segments[0].Address
	var end uint64
	for _, segment := range segments {
		start = min(start, segment.Address)
		if e := uint64(segment.Address) + uint64(len(segment.Data)); e > end {
			end = e
		}
	}
	size := end - uint64(start)
	if size > math.MaxUint32 {
		return nil, fmt.Errorf("%w: image spans %d bytes", ErrAlloc, size)
	}
	return mem.ToBinary(start, uint32(size), fill), nil
}
