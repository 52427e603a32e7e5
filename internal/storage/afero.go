package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/spf13/afero"
)

const (
	errorResolvePathFormat   = "resolve %s: %w"
	errorStatPathFormat      = "stat %s: %w"
	errorListDirectoryFormat = "list %s: %w"
	errorReadFileFormat      = "read %s: %w"
)

var _ FileSystem = (*AferoFileSystem)(nil)

// AferoFileSystem exposes an afero filesystem through the FileSystem interface.
// Paths use the host separator.
type AferoFileSystem struct {
	fileSystem afero.Fs
	local      bool
}

// NewLocalFileSystem returns a read-only view of the host filesystem.
func NewLocalFileSystem() *AferoFileSystem {
	return &AferoFileSystem{fileSystem: afero.NewReadOnlyFs(afero.NewOsFs()), local: true}
}

// NewMemoryFileSystem wraps an arbitrary afero filesystem, typically afero.NewMemMapFs.
// Creation times are not available through this backend.
func NewMemoryFileSystem(fileSystem afero.Fs) *AferoFileSystem {
	return &AferoFileSystem{fileSystem: afero.NewReadOnlyFs(fileSystem)}
}

// Resolve returns the absolute, symlink-free form of path on the host, or the
// cleaned rooted path for in-memory filesystems.
func (backend *AferoFileSystem) Resolve(path string) (string, error) {
	if !backend.local {
		return filepath.Clean(string(filepath.Separator) + path), nil
	}
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", fmt.Errorf(errorResolvePathFormat, path, absoluteError)
	}
	resolvedPath, evaluateError := filepath.EvalSymlinks(absolutePath)
	if evaluateError != nil {
		return "", fmt.Errorf(errorResolvePathFormat, path, evaluateError)
	}
	return resolvedPath, nil
}

func (backend *AferoFileSystem) IsDir(path string) (bool, error) {
	info, statError := backend.fileSystem.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return false, nil
		}
		return false, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	return info.IsDir(), nil
}

func (backend *AferoFileSystem) IsFile(path string) (bool, error) {
	info, statError := backend.fileSystem.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return false, nil
		}
		return false, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	return info.Mode().IsRegular(), nil
}

// List returns the immediate children of path in the order afero reports them.
func (backend *AferoFileSystem) List(path string) ([]string, error) {
	infos, readError := afero.ReadDir(backend.fileSystem, path)
	if readError != nil {
		return nil, fmt.Errorf(errorListDirectoryFormat, path, readError)
	}
	children := make([]string, 0, len(infos))
	for _, info := range infos {
		children = append(children, filepath.Join(path, info.Name()))
	}
	return children, nil
}

func (backend *AferoFileSystem) Name(path string) string {
	return filepath.Base(path)
}

func (backend *AferoFileSystem) Join(directory string, name string) string {
	return filepath.Join(directory, name)
}

func (backend *AferoFileSystem) Size(path string) (int64, error) {
	info, statError := backend.fileSystem.Stat(path)
	if statError != nil {
		return 0, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	return info.Size(), nil
}

// Created reports the birth time where the host records one and the inode
// change time otherwise.
func (backend *AferoFileSystem) Created(path string) (time.Time, error) {
	if !backend.local {
		return time.Time{}, fmt.Errorf(errorStatPathFormat, path, ErrStatUnavailable)
	}
	timespec, statError := times.Stat(path)
	if statError != nil {
		return time.Time{}, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	if timespec.HasBirthTime() {
		return timespec.BirthTime(), nil
	}
	if timespec.HasChangeTime() {
		return timespec.ChangeTime(), nil
	}
	return time.Time{}, fmt.Errorf(errorStatPathFormat, path, ErrStatUnavailable)
}

func (backend *AferoFileSystem) Modified(path string) (time.Time, error) {
	info, statError := backend.fileSystem.Stat(path)
	if statError != nil {
		return time.Time{}, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	return info.ModTime(), nil
}

func (backend *AferoFileSystem) ReadLines(path string) ([]string, error) {
	content, readError := afero.ReadFile(backend.fileSystem, path)
	if readError != nil {
		return nil, fmt.Errorf(errorReadFileFormat, path, readError)
	}
	return splitLines(content)
}
