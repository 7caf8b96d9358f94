package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"imgor/internal/imgor"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	IsDirectory bool
}

// Copy records one CopyFile call.
type Copy struct {
	From string
	To   string
}

// MockFilesystemManager is an in-memory filesystem for testing.
type MockFilesystemManager struct {
	files map[string]*MockFile

	// Copies lists successful CopyFile calls in order.
	Copies []Copy

	// FailCopy makes CopyFile to the given destination return the error.
	FailCopy map[string]error
}

// NewMockFilesystemManager creates a new mock filesystem containing only "/".
func NewMockFilesystemManager() *MockFilesystemManager {
	m := &MockFilesystemManager{
		files:    make(map[string]*MockFile),
		FailCopy: make(map[string]error),
	}
	m.files["/"] = &MockFile{Permissions: 0755, IsDirectory: true}
	return m
}

// AddFile adds a file to the mock filesystem, creating its parent directories.
func (m *MockFilesystemManager) AddFile(path string, content []byte) {
	path = filepath.Clean(path)
	m.AddDirectory(filepath.Dir(path))
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
	}
}

// AddDirectory adds a directory and its parents to the mock filesystem.
func (m *MockFilesystemManager) AddDirectory(path string) {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if _, ok := m.files[p]; !ok {
			m.files[p] = &MockFile{Permissions: 0755, IsDirectory: true}
		}
		if p == filepath.Dir(p) {
			return
		}
	}
}

// File returns the file at path, or nil.
func (m *MockFilesystemManager) File(path string) *MockFile {
	return m.files[filepath.Clean(path)]
}

func (m *MockFilesystemManager) ResolveDir(rawPath string) (string, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", err
	}

	file, ok := m.files[absPath]
	if !ok {
		return "", fmt.Errorf("directory not found: %s", absPath)
	}
	if !file.IsDirectory {
		return "", fmt.Errorf("not a directory: %s", absPath)
	}
	return absPath, nil
}

func (m *MockFilesystemManager) ListFiles(dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	if f, ok := m.files[dir]; !ok || !f.IsDirectory {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}

	var paths []string
	for p, f := range m.files {
		if f.IsDirectory || filepath.Dir(p) != dir {
			continue
		}
		if strings.HasPrefix(filepath.Base(p), ".") {
			continue
		}
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths, nil
}

func (m *MockFilesystemManager) Exists(path string) (bool, error) {
	_, ok := m.files[filepath.Clean(path)]
	return ok, nil
}

func (m *MockFilesystemManager) MkdirAll(path string) error {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if f, ok := m.files[p]; ok && !f.IsDirectory {
			return fmt.Errorf("not a directory: %s", p)
		}
		if p == filepath.Dir(p) {
			break
		}
	}
	m.AddDirectory(path)
	return nil
}

func (m *MockFilesystemManager) CopyFile(src, dst string) error {
	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if err, ok := m.FailCopy[dst]; ok {
		return err
	}

	file, ok := m.files[src]
	if !ok || file.IsDirectory {
		return fmt.Errorf("file not found: %s", src)
	}
	if _, ok := m.files[dst]; ok {
		return fmt.Errorf("destination exists: %s", dst)
	}
	if parent, ok := m.files[filepath.Dir(dst)]; !ok || !parent.IsDirectory {
		return fmt.Errorf("directory not found: %s", filepath.Dir(dst))
	}

	m.files[dst] = &MockFile{
		Content:     slices.Clone(file.Content),
		Permissions: file.Permissions,
	}
	m.Copies = append(m.Copies, Copy{From: src, To: dst})
	return nil
}

// Compile-time check
var _ imgor.FilesystemManager = (*MockFilesystemManager)(nil)
