// Package feedfile opens feed captures on disk, either mapped into memory for
// Scanner/Parse or buffered for chunked framing through stream.Reader.
package feedfile

import (
	"bufio"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/tempo/internal/itch/stream"
)

// Mapped is a read-only memory mapping of a feed file.
type Mapped struct {
	path string
	file *os.File
	data mmap.MMap
}

// Map opens path and maps it read-only. An empty file is not mapped and
// yields an empty Bytes.
func Map(path string) (*Mapped, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "feedfile: open "+path)
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.WithMessage(err, "feedfile: stat "+path)
	}
	if stat.IsDir() {
		file.Close()
		return nil, errors.Errorf("feedfile: %s is a directory", path)
	}

	m := &Mapped{path: path, file: file}
	if stat.Size() == 0 {
		log.Debug().Str("path", path).Msg("feed file empty, not mapped")
		return m, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, errors.WithMessage(err, "feedfile: mmap "+path)
	}
	m.data = data
	log.Debug().Str("path", path).Int64("bytes", stat.Size()).Msg("feed file mapped")
	return m, nil
}

// Bytes is the mapped file content. It is invalid after Close.
func (m *Mapped) Bytes() []byte {
	return m.data
}

// Close unmaps and closes the file. Later calls are no-ops.
func (m *Mapped) Close() error {
	var unmapErr, closeErr error
	if m.data != nil {
		unmapErr = m.data.Unmap()
		m.data = nil
	}
	if m.file != nil {
		closeErr = m.file.Close()
		m.file = nil
	}
	if unmapErr != nil {
		return errors.WithMessage(unmapErr, "feedfile: unmap "+m.path)
	}
	if closeErr != nil {
		return errors.WithMessage(closeErr, "feedfile: close "+m.path)
	}
	return nil
}

// Chunked frames a feed file through a fixed-size read buffer.
type Chunked struct {
	*stream.Reader
	path string
	file *os.File
}

// Open opens path for chunked reading with a read buffer of chunkSize bytes.
func Open(path string, chunkSize int) (*Chunked, error) {
	if chunkSize <= 0 {
		return nil, errors.Errorf("feedfile: invalid chunk size %d", chunkSize)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithMessage(err, "feedfile: open "+path)
	}
	log.Debug().Str("path", path).Int("chunk_size", chunkSize).Msg("feed file opened")
	return &Chunked{
		Reader: stream.NewReader(bufio.NewReaderSize(file, chunkSize)),
		path:   path,
		file:   file,
	}, nil
}

// Close closes the file. Later calls are no-ops.
func (c *Chunked) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	if err != nil {
		return errors.WithMessage(err, "feedfile: close "+c.path)
	}
	return nil
}
