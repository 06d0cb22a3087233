package packager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"bilimux/internal/services"
)

// LockName is the advisory lock file created in the output root.
const LockName = ".bilimux.lock"

// Lock is a held library lock.
type Lock struct {
	lock *flock.Flock
}

// Lock takes the advisory lock for the output root on the host filesystem,
// creating the root if needed. It fails with ErrLocked when another process
// holds it.
func (p *Packager) Lock() (*Lock, error) {
	if err := os.MkdirAll(p.root, 0o755); err != nil {
		return nil, services.Wrap(ErrIO, "package", "create output root", p.root, err)
	}
	path := filepath.Join(p.root, LockName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(ErrIO, "package", "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(ErrLocked, "package", "acquire lock", fmt.Sprintf("%s is held by another bilimux run", path), nil)
	}
	return &Lock{lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.lock.Path()
}

// Unlock releases the lock. The lock file is left in place.
func (l *Lock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
