package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath returns the absolute, cleaned form of a document
// output path. Existing symlinks and directories are refused as targets;
// a file that does not exist yet is fine.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve %q: %w", path, err)
	}

	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot stat %s: %w", abs, err)
	}

	switch mode := info.Mode(); {
	case mode&fs.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write through symlink %s", abs)
	case mode.IsDir():
		return "", fmt.Errorf("pathutil: output path %s is a directory", abs)
	}
	return abs, nil
}
