// Package table implements the solver's one-byte-per-index
// transposition table as a memory-mapped byte slice, either backed by
// a file (persists across runs) or by anonymous memory (doesn't).
package table

import (
	"fmt"
	"os"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// Table is a flat, byte-addressed array of size entries, memory-mapped
// either from a file or from anonymous memory.
type Table struct {
	data []byte
	file *os.File
}

// NewFileBacked opens (creating if necessary) the file at path, grows
// it to size bytes if it's smaller, and maps it shared-writable so
// writes are visible to any later run against the same file. Freshly
// grown regions read back as zero, which collides exactly with the
// ILLEGAL/not-yet-verified byte value — the table never needs a
// separate "has this been touched" bit.
func NewFileBacked(path string, size uint64) (*Table, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o664)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("table: stat %s: %w", path, err)
	}
	if uint64(info.Size()) < size {
		if err := f.Truncate(int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("table: grow %s to %d bytes: %w", path, size, err)
		}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("table: mmap %s: %w", path, err)
	}

	log.Info().Str("path", path).Uint64("size-bytes", size).Msg("table-backed-by-file")
	return &Table{data: data, file: f}, nil
}

// NewAnonymous maps size bytes of anonymous, non-persistent memory.
// Callers that request a size approaching or exceeding total system
// memory will still get the mapping (the kernel overcommits lazily),
// but RecommendedAnonymousCap can be used first to decide whether to
// warn.
func NewAnonymous(size uint64) (*Table, error) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("table: anonymous mmap of %d bytes: %w", size, err)
	}
	log.Info().Uint64("size-bytes", size).Msg("table-backed-by-anonymous-memory")
	return &Table{data: data}, nil
}

// RecommendedAnonymousCap reports whether an anonymous table of size
// bytes comfortably fits in available system memory, so the driver
// can warn before committing to a mapping that will thrash.
func RecommendedAnonymousCap(size uint64) (fits bool, totalMemory uint64) {
	total := memory.TotalMemory()
	return size <= total, total
}

// Len returns the number of addressable bytes.
func (t *Table) Len() uint64 {
	return uint64(len(t.data))
}

// Get returns the byte stored at idx.
func (t *Table) Get(idx uint64) byte {
	return t.data[idx]
}

// Set stores b at idx.
func (t *Table) Set(idx uint64, b byte) {
	t.data[idx] = b
}

// Sync flushes dirty pages to the backing file. It is a no-op for
// anonymous tables.
func (t *Table) Sync() error {
	if t.file == nil {
		return nil
	}
	if err := unix.Msync(t.data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("table: msync: %w", err)
	}
	return nil
}

// Close flushes and releases the mapping. It is mandatory on SIGINT:
// without it, the file-backed table's last writes may never reach
// disk.
func (t *Table) Close() error {
	if err := t.Sync(); err != nil {
		return err
	}
	if err := unix.Munmap(t.data); err != nil {
		return fmt.Errorf("table: munmap: %w", err)
	}
	if t.file != nil {
		if err := t.file.Close(); err != nil {
			return fmt.Errorf("table: close file: %w", err)
		}
	}
	return nil
}
