//go:build windows

package opener

import "os"

// lock and unlock are no-ops on platforms without flock semantics
// (spec.md §5: "locking is unavailable there and is skipped").
func lock(f *os.File, writable, blocking bool) error { return nil }

func unlock(c Closer) error { return nil }
