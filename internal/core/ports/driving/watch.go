package driving

import "context"

// DirectoryWatcher processes SPL XML files as they appear in a directory.
type DirectoryWatcher interface {
	// Watch blocks processing create/write events under dir until ctx is
	// cancelled. Per-file failures are logged and skipped.
	Watch(ctx context.Context, dir string, opts BatchOptions) error
}
