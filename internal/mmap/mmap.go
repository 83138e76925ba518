package mmap

import (
	"errors"
	"io"
	"os"
)

// ErrInvalidOffset is returned by ReadAt for a negative offset.
var ErrInvalidOffset = errors.New("mmap: invalid offset")

// Mapping is a read-only memory-mapped file.
type Mapping struct {
	data []byte
	f    *os.File
}

// Open maps the file at path into memory.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{f: f}, nil
	}
	if size < 0 || int64(int(size)) != size {
		_ = f.Close()
		return nil, errors.New("mmap: unsupported file size")
	}

	data, err := mmap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Mapping{data: data, f: f}, nil
}

// Bytes returns the mapped contents.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Size returns the mapped length.
func (m *Mapping) Size() int {
	return len(m.data)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the memory and closes the file. It is idempotent.
func (m *Mapping) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil {
		err = munmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if cerr := m.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		m.f = nil
	}
	return err
}
