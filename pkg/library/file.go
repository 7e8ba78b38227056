package library

import (
	stderrors "errors"
	"os"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/tannerbroberts/abouttime/pkg/cache"
	"github.com/tannerbroberts/abouttime/pkg/errors"
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// FileStore loads and saves a template library from a single JSON file.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore creates a file-backed library store.
// A nil logger falls back to log.Default().
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the library file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the library file. Any failure, whether a missing file, broken
// JSON, or an invalid record, yields an empty library rather than an error:
// the application starts usable and the problem is logged for the user.
func (s *FileStore) Load() template.Library {
	lib, err := template.ReadLibraryFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			s.logger.Debug("library file not found, starting empty", "path", s.path)
		} else {
			s.logger.Warn("library unreadable, starting empty", "path", s.path, "err", err)
		}
		return template.Library{}
	}
	return lib
}

// LoadStore reads the library file and builds the immutable store.
func (s *FileStore) LoadStore() *template.Store {
	return template.NewStore(s.Load())
}

// Hash returns the content hash of the library file, used to scope cache
// keys to one exact library state. An unreadable file hashes as empty.
func (s *FileStore) Hash() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		data = nil
	}
	return cache.Hash(data)
}

// Save writes the library to disk.
//
// A quota failure (ENOSPC or EDQUOT) is the one write failure the user must
// see, returned as a STORAGE_QUOTA_EXCEEDED advisory. Every other write
// failure is logged and swallowed: the in-memory library remains the source
// of truth for the session and a later save may succeed.
func (s *FileStore) Save(lib template.Library) error {
	err := template.WriteLibraryFile(lib, s.path)
	if err == nil {
		return nil
	}

	if stderrors.Is(err, syscall.ENOSPC) || stderrors.Is(err, syscall.EDQUOT) {
		return errors.Wrap(errors.ErrCodeStorageQuota, err,
			"library storage is full; free up space and save again")
	}

	s.logger.Warn("library save failed", "path", s.path, "err", err)
	return nil
}
