//go:build !windows

package opener

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"acornfs/acorn"
)

// lock takes a whole-file advisory lock on f, matching original_source/
// acorn-fs.c's lock_file: F_WRLCK for a writable open, F_RDLCK otherwise,
// retried across EINTR. Unlike the source, which always blocks
// (F_SETLKW), lock defaults to non-blocking (LOCK_NB) so a caller never
// hangs forever behind a lock held by a crashed process (spec.md §5); set
// blocking to true for the original wait-forever behavior.
func lock(f *os.File, writable, blocking bool) error {
	how := unix.LOCK_SH
	if writable {
		how = unix.LOCK_EX
	}
	if !blocking {
		how |= unix.LOCK_NB
	}
	for {
		err := unix.Flock(int(f.Fd()), how)
		if err == nil {
			return nil
		}
		if err == syscall.EINTR {
			continue
		}
		return acorn.Wrap(acorn.KindIO, err, "lock image")
	}
}

func unlock(c Closer) error {
	f, ok := c.(*os.File)
	if !ok {
		return nil
	}
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_UN)
		if err == nil {
			return nil
		}
		if err == syscall.EINTR {
			continue
		}
		return acorn.Wrap(acorn.KindIO, err, "unlock image")
	}
}
