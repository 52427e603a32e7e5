package commands_test

import (
	"errors"
	"io/fs"
	"path"
	"slices"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/temirov/cloudtree/internal/storage"
)

var errStubUnavailable = errors.New("stub: unavailable")

type stubEntry struct {
	directory   bool
	size        int64
	created     time.Time
	modified    time.Time
	sizeError   error
	lines       []string
	listError   error
	noTimestamp bool
}

// stubFileSystem is an in-memory storage.FileSystem with per-entry metadata
// and injectable failures. Children are listed in insertion order. Aliases
// resolve one path to another, the way a symbolic link does.
type stubFileSystem struct {
	entries   map[string]stubEntry
	children  map[string][]string
	aliases   map[string]string
	listCalls int
}

func newStubFileSystem() *stubFileSystem {
	return &stubFileSystem{
		entries:  map[string]stubEntry{"/": {directory: true}},
		children: map[string][]string{},
		aliases:  map[string]string{},
	}
}

func (stub *stubFileSystem) add(entryPath string, entry stubEntry) *stubFileSystem {
	stub.entries[entryPath] = entry
	parent := path.Dir(entryPath)
	if !slices.Contains(stub.children[parent], entryPath) {
		stub.children[parent] = append(stub.children[parent], entryPath)
	}
	return stub
}

func (stub *stubFileSystem) Resolve(entryPath string) (string, error) {
	cleaned := path.Clean("/" + entryPath)
	if target, aliased := stub.aliases[cleaned]; aliased {
		return target, nil
	}
	return cleaned, nil
}

func (stub *stubFileSystem) IsDir(entryPath string) (bool, error) {
	return stub.entries[entryPath].directory, nil
}

func (stub *stubFileSystem) IsFile(entryPath string) (bool, error) {
	entry, exists := stub.entries[entryPath]
	return exists && !entry.directory, nil
}

func (stub *stubFileSystem) List(entryPath string) ([]string, error) {
	stub.listCalls++
	entry, exists := stub.entries[entryPath]
	if !exists {
		return nil, fs.ErrNotExist
	}
	if entry.listError != nil {
		return nil, entry.listError
	}
	return append([]string(nil), stub.children[entryPath]...), nil
}

func (stub *stubFileSystem) Name(entryPath string) string {
	return path.Base(entryPath)
}

func (stub *stubFileSystem) Join(directory string, name string) string {
	return path.Join(directory, name)
}

func (stub *stubFileSystem) Size(entryPath string) (int64, error) {
	entry := stub.entries[entryPath]
	if entry.sizeError != nil {
		return 0, entry.sizeError
	}
	return entry.size, nil
}

func (stub *stubFileSystem) Created(entryPath string) (time.Time, error) {
	entry := stub.entries[entryPath]
	if entry.noTimestamp {
		return time.Time{}, storage.ErrStatUnavailable
	}
	return entry.created, nil
}

func (stub *stubFileSystem) Modified(entryPath string) (time.Time, error) {
	entry := stub.entries[entryPath]
	if entry.noTimestamp {
		return time.Time{}, errStubUnavailable
	}
	return entry.modified, nil
}

func (stub *stubFileSystem) ReadLines(entryPath string) ([]string, error) {
	entry, exists := stub.entries[entryPath]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return entry.lines, nil
}

var _ storage.FileSystem = (*stubFileSystem)(nil)

// newMemoryTree creates the fixture used across traversal tests:
//
//	/root/a/x.txt (10 bytes)
//	/root/b.txt   (20 bytes)
func newMemoryTree(t *testing.T, extraFiles map[string]string) *storage.AferoFileSystem {
	t.Helper()
	memory := afero.NewMemMapFs()
	if err := memory.MkdirAll("/root/a", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"/root/a/x.txt": "0123456789",
		"/root/b.txt":   "01234567890123456789",
	}
	for filePath, content := range extraFiles {
		files[filePath] = content
	}
	for filePath, content := range files {
		if err := memory.MkdirAll(path.Dir(filePath), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", filePath, err)
		}
		if err := afero.WriteFile(memory, filePath, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", filePath, err)
		}
	}
	return storage.NewMemoryFileSystem(memory)
}
