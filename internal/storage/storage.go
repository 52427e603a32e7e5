// Package storage provides the filesystem capability the tree builder walks:
// a small, backend-agnostic view over local disk, in-memory trees and SQLite
// object indexes.
package storage

import (
	"errors"
	"time"
)

var (
	// ErrStatUnavailable reports metadata the backend cannot provide for a path.
	ErrStatUnavailable = errors.New("storage: statistic unavailable")
	// ErrNotDirectory reports an attempt to list something that is not a directory.
	ErrNotDirectory = errors.New("storage: not a directory")
	// ErrIsDirectory reports an attempt to read a directory as a file.
	ErrIsDirectory = errors.New("storage: is a directory")
	// ErrUnsupportedScheme reports a target URI whose scheme has no backend.
	ErrUnsupportedScheme = errors.New("storage: unsupported scheme")
	// ErrUnknownOption reports a backend option the selected backend does not accept.
	ErrUnknownOption = errors.New("storage: unknown option")
)

// FileSystem is the read-only set of operations the tree builder needs.
// Paths are backend-specific strings; missing paths report false from IsDir
// and IsFile without an error.
type FileSystem interface {
	Resolve(path string) (string, error)
	IsDir(path string) (bool, error)
	IsFile(path string) (bool, error)
	List(path string) ([]string, error)
	Name(path string) string
	Join(directory string, name string) string
	Size(path string) (int64, error)
	Created(path string) (time.Time, error)
	Modified(path string) (time.Time, error)
	ReadLines(path string) ([]string, error)
}
