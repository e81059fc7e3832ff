package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

// loadFromFS reads name from files. The size limit is checked against the
// file info first so oversized entries are never read.
func loadFromFS(ctx context.Context, files fs.FS, name string, limit int64) ([]byte, error) {
	switch {
	case files == nil:
		return nil, errors.New("loader: no filesystem configured for fs sources")
	case !fs.ValidPath(name):
		return nil, fmt.Errorf("loader: invalid fs path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if limit > 0 {
		if info, err := fs.Stat(files, name); err == nil && info.Size() > limit {
			return nil, fmt.Errorf("%w (%s is %d bytes)", ErrTooLarge, name, info.Size())
		}
	}
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	return data, checkSize(data, limit)
}
