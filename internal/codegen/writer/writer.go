// Package writer persists generated artifacts. Every file is written to a
// temporary sibling and renamed into place, so a failed run never leaves a
// truncated artifact behind.
package writer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ticos/tmgen/internal/codegen/generr"
)

const defaultMode fs.FileMode = 0o644

// File is one artifact to write.
type File struct {
	Name    string
	Content []byte
	// Mode defaults to 0644.
	Mode fs.FileMode
}

// WriteAll writes files into dir, replacing existing files of the same name.
// dir must already exist. Writing stops at the first failure; files written
// before it stay complete.
func WriteAll(dir string, files []File) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, generr.IO("output directory "+dir, err)
	}
	if !info.IsDir() {
		return nil, generr.IO(fmt.Sprintf("output path %s is not a directory", dir), nil)
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f.Name == "" || f.Name != filepath.Base(f.Name) {
			return paths, generr.IO(fmt.Sprintf("invalid artifact name %q", f.Name), nil)
		}
		path := filepath.Join(dir, f.Name)
		mode := f.Mode
		if mode == 0 {
			mode = defaultMode
		}
		if err := WriteFile(path, f.Content, mode); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if err := syncDir(dir); err != nil {
		return paths, generr.IO("sync "+dir, err)
	}
	return paths, nil
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte, mode fs.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return generr.IO("create temp file for "+path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return generr.IO("write "+path, err)
	}
	if err = tmp.Sync(); err != nil {
		return generr.IO("sync "+path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return generr.IO("chmod "+path, err)
	}
	if err = tmp.Close(); err != nil {
		return generr.IO("close "+path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return generr.IO("rename into "+path, err)
	}
	return nil
}
