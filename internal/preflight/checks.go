package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"bilimux/internal/config"
	"bilimux/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDirectory verifies that the directory exists and can be listed.
func CheckReadableDirectory(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

// CheckCreatableDirectory passes when path is a writable directory or when
// the nearest existing ancestor is writable so path can be created.
func CheckCreatableDirectory(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	ancestor := filepath.Dir(filepath.Clean(path))
	for {
		if _, err := os.Stat(ancestor); err == nil {
			break
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing ancestor)", path)}
		}
		ancestor = parent
	}
	if err := unix.Access(ancestor, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, ancestor, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckSystemDeps evaluates the external binaries required by cfg.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{deps.FFmpegRequirement(cfg.FFmpegBinary())})
}
