package system

import (
	"fmt"
	"os"
)

// DefaultFilePerms is the mode used when Overwrite creates a new file.
const DefaultFilePerms os.FileMode = 0644

// FileSystem handles file system operations
type FileSystem struct{}

// NewFileSystem creates a new FileSystem instance
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Overwrite replaces the contents of path with content.
// The file is truncated in place; no backup is taken and the parent
// directory is never created, so a missing directory is an error and
// leaves nothing behind.
func (fs *FileSystem) Overwrite(path string, content []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, DefaultFilePerms)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", path, err)
	}

	if _, err := file.Write(content); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// Explicitly check close error to prevent silent data loss
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}

// ReadFile returns the contents of a file
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// FileExists checks if a file exists
func (fs *FileSystem) FileExists(path string) (bool, error) {
	return FileExists(path)
}

// FileExists checks if a file exists
func FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists %s: %w", path, err)
}

// DirectoryExists checks if a directory exists
func DirectoryExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if directory exists %s: %w", path, err)
}
