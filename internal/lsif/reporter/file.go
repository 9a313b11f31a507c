// # internal/lsif/reporter/file.go
package reporter

import (
	"fmt"
	"os"
)

// OpenFile opens (creating if absent) a reporter log file the way the
// teacher's cmd/circular/main.go opens its UI-mode log file: refuse a
// symlink target, append-create-write-only, owner-only permissions.
// The caller is responsible for closing the returned file once the
// pipeline run completes.
func OpenFile(path string) (*os.File, error) {
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("refusing to write reporter log to symlink path %s", path)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open reporter log %s: %w", path, err)
	}
	return f, nil
}
