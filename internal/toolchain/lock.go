package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

const (
	// StaleLockThreshold is the age after which a lock whose holder stopped
	// refreshing it is discarded.
	StaleLockThreshold = 10 * time.Minute

	lockPollInterval = 100 * time.Millisecond
	lockMaxWait      = 30 * time.Second
)

// lockHeartbeat is how often a held lock's mtime is refreshed.
var lockHeartbeat = StaleLockThreshold / 4

// AcquireLock takes the cross-process install lock at path, waiting while
// another process holds it. The returned func releases the lock.
//
// A lock is taken over when its recorded pid no longer exists, or when its
// mtime is older than StaleLockThreshold. The holder refreshes the mtime while
// it runs, so a long download never looks stale.
func AcquireLock(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create lock directory: %w", ErrIO, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, lockMaxWait)
	defer cancel()

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			token := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339Nano))
			_, werr := f.WriteString(token)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("%w: write lock: %w", ErrIO, errors.Join(werr, cerr))
			}
			return holdLock(path, []byte(token)), nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: acquire lock: %w", ErrIO, err)
		}
		if isLockStale(waitCtx, path) {
			_ = os.Remove(path)
			continue
		}
		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: %s is held (%v)", ErrLocked, path, waitCtx.Err())
		case <-ticker.C:
		}
	}
}

// holdLock keeps the lock fresh until the returned release func runs. Release
// removes the file only while it still carries token.
func holdLock(path string, token []byte) func() {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(lockHeartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if ownsLock(path, token) {
					now := time.Now()
					_ = os.Chtimes(path, now, now)
				}
			}
		}
	}()

	var released bool
	return func() {
		if released {
			return
		}
		released = true
		close(done)
		<-stopped
		if ownsLock(path, token) {
			_ = os.Remove(path)
		}
	}
}

func ownsLock(path string, token []byte) bool {
	data, err := os.ReadFile(path)
	return err == nil && bytes.Equal(data, token)
}

func isLockStale(ctx context.Context, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if time.Since(info.ModTime()) > StaleLockThreshold {
		return true
	}
	pid, ok := lockPID(path)
	if !ok || pid == int32(os.Getpid()) {
		return false
	}
	alive, err := process.PidExistsWithContext(ctx, pid)
	return err == nil && !alive
}

// lockPID reads the pid line written by AcquireLock.
func lockPID(path string) (int32, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		value, found := strings.CutPrefix(line, "pid=")
		if !found {
			continue
		}
		pid, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
		if err != nil || pid <= 0 {
			return 0, false
		}
		return int32(pid), true
	}
	return 0, false
}
