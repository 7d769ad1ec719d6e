// Package lineshift removes leading lines from a file in place.
//
// Rather than reading the whole file and writing back the tail, DropLines
// finds the end of the lines being removed (the read cursor) and copies every
// following byte down to offset zero (the write cursor) in ChunkSize pieces.
// The file is then truncated to the shorter length. Work is proportional to
// the size of the retained data and memory use is a single chunk.
//
// Only '\n' terminates a line.
package lineshift

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ChunkSize is the size of the buffer used to scan and shift file contents.
const ChunkSize = 1024

// File is the subset of *os.File used to shift lines out of a file.
// The file must be opened for reading and writing, without O_APPEND.
type File interface {
	io.ReaderAt
	io.WriterAt
	Truncate(size int64) error
}

// CountLines returns the number of lines readable from r. A trailing fragment
// without a terminator counts as a line, so "a\nb" is two lines and "" is zero.
func CountLines(r io.ReaderAt) (int, error) {
	var (
		buf   = make([]byte, ChunkSize)
		count int
		off   int64
		last  byte
	)

	for {
		n, err := r.ReadAt(buf, off)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
			off += int64(n)
		}

		if errors.Is(err, io.EOF) || (n == 0 && err == nil) {
			break
		} else if err != nil {
			return count, fmt.Errorf("counting lines at offset %d: %w", off, err)
		}
	}

	if off > 0 && last != '\n' {
		count++
	}

	return count, nil
}

// DropFirstLine removes the first line of f. See DropLines.
func DropFirstLine(f File) (int64, error) {
	return DropLines(f, 1)
}

// DropLines removes up to n leading lines from f and returns the number of bytes removed.
// Only terminated lines are removed: a file that is empty or has no '\n' is left
// untouched, and nothing is written. Removing the only line truncates the file to zero.
func DropLines(f File, n int) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	buf := make([]byte, ChunkSize)

	cut, err := lineEnd(f, n, buf)
	if err != nil || cut == 0 {
		return 0, err
	}

	size, err := shift(f, cut, buf)
	if err != nil {
		return 0, err
	}

	if err := f.Truncate(size); err != nil {
		return 0, fmt.Errorf("truncating to %d bytes: %w", size, err)
	}

	return cut, nil
}

// lineEnd returns the offset just past the n-th '\n' in r. If fewer than n
// terminators exist, the offset past the last one is returned; zero means none.
func lineEnd(r io.ReaderAt, n int, buf []byte) (int64, error) {
	var (
		off  int64
		end  int64
		seen int
	)

	for seen < n {
		read, err := r.ReadAt(buf, off)
		chunk := buf[:read]

		for seen < n {
			idx := bytes.IndexByte(chunk, '\n')
			if idx < 0 {
				break
			}

			seen++
			end = off + int64(read-len(chunk)+idx) + 1
			chunk = chunk[idx+1:]
		}

		off += int64(read)

		if errors.Is(err, io.EOF) || (read == 0 && err == nil) {
			break
		} else if err != nil {
			return 0, fmt.Errorf("finding line end at offset %d: %w", off, err)
		}
	}

	return end, nil
}

// shift copies everything from the read cursor to the end of f down to offset zero.
// It returns the write cursor, which is the new length of the file.
func shift(f File, read int64, buf []byte) (int64, error) {
	var write int64

	for {
		n, err := f.ReadAt(buf, read)
		if n > 0 {
			if _, werr := f.WriteAt(buf[:n], write); werr != nil {
				return write, fmt.Errorf("shifting %d bytes to offset %d: %w", n, write, werr)
			}

			read += int64(n)
			write += int64(n)
		}

		if errors.Is(err, io.EOF) || (n == 0 && err == nil) {
			return write, nil
		} else if err != nil {
			return write, fmt.Errorf("reading at offset %d: %w", read, err)
		}
	}
}

// Our interface must satisfy an *os.File.
var _ File = (*os.File)(nil)
