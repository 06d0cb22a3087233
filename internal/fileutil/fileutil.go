// Package fileutil provides copy and move helpers over an afero filesystem.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// CopyFile streams src to dst, keeping the source permission bits. An existing
// dst is truncated.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	mode := os.FileMode(0o644)
	if info, err := in.Stat(); err == nil {
		mode = info.Mode().Perm()
	}

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyFileVerified copies src to a hidden sibling of dst with SHA256 + size
// verification, then renames it over dst. A failed copy never leaves a
// truncated file at dst.
func CopyFileVerified(fs afero.Fs, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := PartialPath(dst)
	out, err := fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = fs.Remove(tmp)
		return err
	}

	if written != srcSize {
		_ = fs.Remove(tmp)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = fs.Remove(tmp)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	if err := fs.Rename(tmp, dst); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("replace destination: %w", err)
	}
	return nil
}

// MoveFile renames src onto dst, replacing dst. Moves across devices fall back
// to a verified copy followed by removal of src.
func MoveFile(fs afero.Fs, src, dst string) error {
	err := fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !IsCrossDevice(err) {
		return fmt.Errorf("move file: %w", err)
	}
	if err := CopyFileVerified(fs, src, dst); err != nil {
		return fmt.Errorf("copy file across devices: %w", err)
	}
	if err := fs.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// IsCrossDevice reports whether err is a rename failure caused by src and dst
// living on different filesystems.
func IsCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV)
}

// PartialPath returns the hidden in-progress sibling used while writing path.
func PartialPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".partial")
}

// Exists reports whether path exists and is a regular file.
func Exists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
