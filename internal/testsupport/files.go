package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, fs afero.Fs, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := fs.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := min(int64(chunkSize), remaining)
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadText returns the content of path.
func ReadText(t testing.TB, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// AssertExists fails the test when path is missing.
func AssertExists(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if ok, err := afero.Exists(fs, path); err != nil || !ok {
		t.Fatalf("expected %s to exist (err=%v)", path, err)
	}
}

// AssertMissing fails the test when path exists.
func AssertMissing(t testing.TB, fs afero.Fs, path string) {
	t.Helper()
	if ok, _ := afero.Exists(fs, path); ok {
		t.Fatalf("expected %s to be absent", path)
	}
}
