package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another vttloc run holds the state directory
var ErrLocked = errors.New("another vttloc run is active")

// Lock takes the advisory run lock in stateDir. The returned func
// releases it.
func Lock(stateDir string) (func() error, error) {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	lockPath := filepath.Join(stateDir, "vttloc.lock")
	lock := flock.New(lockPath)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock: %s)", ErrLocked, lockPath)
	}
	return lock.Unlock, nil
}
