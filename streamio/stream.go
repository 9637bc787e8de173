// Package streamio provides the byte-stream abstraction the lexer scans:
// a single NextByte operation, with implementations backed by a file, an
// in-memory slice, and a directory walker for the CLI driver.
package streamio

import (
	"bufio"
	"io"
	"os"
)

// blockSize is the minimum read size for buffered implementations, per
// spec.md §4.5 ("reads fixed-size blocks (>= 4 KiB)").
const blockSize = 4096

// ByteStream supplies one byte at a time to a lexer. NextByte returns
// io.EOF when the stream is exhausted; any other error is an I/O
// failure that should propagate to the caller unchanged.
type ByteStream interface {
	NextByte() (byte, error)
}

// FileStream is a ByteStream backed by an open file, read in >=4 KiB
// blocks via bufio.Reader.
type FileStream struct {
	f *os.File
	r *bufio.Reader
}

// OpenFile opens path and wraps it in a FileStream. The caller must Close
// it when done.
func OpenFile(path string) (*FileStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &FileStream{f: f, r: bufio.NewReaderSize(f, blockSize)}, nil
}

// NextByte returns the next byte from the file, or io.EOF at end of file.
func (s *FileStream) NextByte() (byte, error) {
	return s.r.ReadByte()
}

// Close closes the underlying file.
func (s *FileStream) Close() error {
	return s.f.Close()
}

// SliceStream is an in-memory ByteStream over a fixed byte slice, used
// throughout this module's test suite in place of a file on disk.
type SliceStream struct {
	data []byte
	pos  int
}

// NewSliceStream wraps data in a SliceStream. data is not copied; callers
// must not mutate it while the stream is in use.
func NewSliceStream(data []byte) *SliceStream {
	return &SliceStream{data: data}
}

// NextByte returns the next byte from data, or io.EOF once exhausted.
func (s *SliceStream) NextByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}
