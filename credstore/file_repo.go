package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/stocklens/go-inventory-client/users"
)

var _ Repo = (*FileRepo)(nil)

// FileRepo persists the session as a single JSON document on disk. Writes
// replace the whole file via rename so a concurrent reader never observes a
// torn document. Processes are not otherwise coordinated.
type FileRepo struct {
	path string
	lock sync.RWMutex
}

// NewFileRepo creates a file-backed store at path. The file is created on
// first write.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// fileDocument keeps the browser dashboard's localStorage key names so a
// session file stays self-describing.
type fileDocument struct {
	Tokens  *Credentials   `json:"auth_tokens,omitempty"`
	Profile *users.Profile `json:"auth_user,omitempty"`
}

func (fr *FileRepo) Credentials() (*Credentials, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()

	doc, err := fr.read()
	if err != nil {
		return nil, err
	}
	if !doc.Tokens.Valid() {
		return nil, nil
	}
	return doc.Tokens, nil
}

func (fr *FileRepo) SetCredentials(creds *Credentials) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	doc, err := fr.read()
	if err != nil {
		return err
	}
	doc.Tokens = creds
	return fr.write(doc)
}

func (fr *FileRepo) Profile() (*users.Profile, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()

	doc, err := fr.read()
	if err != nil {
		return nil, err
	}
	return doc.Profile, nil
}

func (fr *FileRepo) SetProfile(profile *users.Profile) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	doc, err := fr.read()
	if err != nil {
		return err
	}
	doc.Profile = profile
	return fr.write(doc)
}

func (fr *FileRepo) Clear() error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	if err := os.Remove(fr.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] remove session file")
	}
	return nil
}

func (fr *FileRepo) read() (*fileDocument, error) {
	data, err := os.ReadFile(fr.path)
	if os.IsNotExist(err) {
		return &fileDocument{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileRepo.read] read session file")
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt file reads as logged out.
		return &fileDocument{}, nil
	}
	return &doc, nil
}

func (fr *FileRepo) write(doc *fileDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.write] encode session")
	}

	tmp, err := os.CreateTemp(filepath.Dir(fr.path), ".session-*")
	if err != nil {
		return errors.Wrap(err, "[FileRepo.write] create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileRepo.write] write temp file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileRepo.write] chmod temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileRepo.write] close temp file")
	}

	if err := os.Rename(tmpName, fr.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileRepo.write] replace session file")
	}
	return nil
}
