package system

import (
	"fmt"
	"os"
	"sync"
)

// MockFileSystem is a mock of the FileSystem for testing purposes.
// It captures written files in memory and implements FileSystemManager.
type MockFileSystem struct {
	mu           sync.Mutex
	WrittenFiles map[string][]byte
	// WriteErr, when set, is returned by Overwrite and nothing is recorded.
	WriteErr error
	Writes   int
}

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		WrittenFiles: make(map[string][]byte),
	}
}

// Overwrite captures the content that would be written to a file.
func (m *MockFileSystem) Overwrite(path string, content []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	m.WrittenFiles[path] = buf
	m.Writes++
	return nil
}

// ReadFile returns previously captured content.
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.WrittenFiles[path]
	if !ok {
		return nil, fmt.Errorf("failed to read %s: %w", path, os.ErrNotExist)
	}
	return data, nil
}

// FileExists reports whether content was captured for path.
func (m *MockFileSystem) FileExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.WrittenFiles[path]
	return ok, nil
}
