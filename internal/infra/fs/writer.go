package fs

import (
	"os"
	"path/filepath"

	"github.com/antimoji/emojify/internal/types"
)

// AtomicWriteFile replaces path with data by writing a temporary file in the
// same directory and renaming it over the original. An existing file keeps
// its permissions; a new file gets perm.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) types.Result[struct{}] {
	mode := perm
	if stat, err := os.Stat(path); err == nil {
		mode = stat.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".emojify-tmp-*")
	if err != nil {
		return types.Err[struct{}](err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return types.Err[struct{}](err)
	}
	if err := tmp.Sync(); err != nil {
		return types.Err[struct{}](err)
	}
	if err := tmp.Close(); err != nil {
		return types.Err[struct{}](err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return types.Err[struct{}](err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return types.Err[struct{}](err)
	}

	committed = true
	return types.Ok(struct{}{})
}
