/*
Package archive reads and writes the per-ticker ZIP archives of filings.
*/
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shanehull/lmsentiment/internal/types"
)

// ErrArchive marks an archive that cannot be opened or an entry that cannot be read.
var ErrArchive = errors.New("archive error")

// DefaultMaxEntryBytes bounds the uncompressed size of a single entry.
const DefaultMaxEntryBytes int64 = 64 << 20

const ext = ".zip"

// Entry is one ticker archive found in a data directory.
type Entry struct {
	Ticker string
	Path   string
}

// Discover lists the ZIP archives of dir sorted by file name. The ticker is the
// file name without its extension.
func Discover(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory %s: %w", dir, err)
	}
	var entries []Entry
	for _, it := range items {
		name := it.Name()
		if it.IsDir() || !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		entries = append(entries, Entry{
			Ticker: strings.TrimSuffix(name, filepath.Ext(name)),
			Path:   filepath.Join(dir, name),
		})
	}
	return entries, nil
}

// PathFor returns the archive location of ticker inside dir.
func PathFor(dir, ticker string) string {
	return filepath.Join(dir, ticker+ext)
}

// Reader iterates the files of one archive. Close must be called once done;
// Walk does it for the caller.
type Reader struct {
	path          string
	zr            *zip.ReadCloser
	MaxEntryBytes int64
}

func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrArchive, path, err)
	}
	return &Reader{path: path, zr: zr, MaxEntryBytes: DefaultMaxEntryBytes}, nil
}

func (r *Reader) Close() error {
	return r.zr.Close()
}

// Each calls yield for every regular file in archive order. A file that cannot
// be read is passed with a nil Content and a non-nil readErr so the caller can
// skip it and carry on. Iteration stops at the first error returned by yield.
func (r *Reader) Each(ctx context.Context, yield func(doc types.Document, readErr error) error) error {
	for _, f := range r.zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		content, readErr := r.read(f)
		if err := yield(types.Document{Name: f.Name, Content: content}, readErr); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader) read(f *zip.File) ([]byte, error) {
	limit := r.MaxEntryBytes
	if limit <= 0 {
		limit = DefaultMaxEntryBytes
	}
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%w: %s in %s is larger than %d bytes", ErrArchive, f.Name, r.path, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s in %s: %v", ErrArchive, f.Name, r.path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s in %s: %v", ErrArchive, f.Name, r.path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s in %s is larger than %d bytes", ErrArchive, f.Name, r.path, limit)
	}
	return data, nil
}

// Walk opens path, iterates it and releases it on every exit path.
func Walk(ctx context.Context, path string, yield func(doc types.Document, readErr error) error) (err error) {
	r, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%w: failed to close %s: %v", ErrArchive, path, cerr)
		}
	}()
	return r.Each(ctx, yield)
}

// Write stores docs as a new ZIP at path. The archive is built in a temporary
// file next to path and renamed into place, so readers never see a partial file.
func Write(path string, docs []types.Document) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temporary archive: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	for _, d := range docs {
		w, err := zw.Create(d.Name)
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", d.Name, err)
		}
		if _, err := w.Write(d.Content); err != nil {
			return fmt.Errorf("failed to write %s to archive: %w", d.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary archive: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}
