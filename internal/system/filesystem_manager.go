package system

// FileSystemManager defines the interface for file system operations.
// This allows for mocking the file system in tests.
type FileSystemManager interface {
	Overwrite(path string, content []byte) error
	ReadFile(path string) ([]byte, error)
	FileExists(path string) (bool, error)
}

var _ FileSystemManager = (*FileSystem)(nil)
