package tokens

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"uniportal.org/internal/obs"
)

// FileStore persists the credential pair as a JSON document on disk, the
// native-client substitute for browser cookie storage. All I/O failures
// degrade to "token absent".
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Get(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.load()
	v, ok := values[name]
	return v, ok && v != ""
}

func (f *FileStore) Set(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.load()
	values[name] = value
	f.save(values)
}

func (f *FileStore) Remove(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := f.load()
	changed := false
	for _, name := range names {
		if _, ok := values[name]; ok {
			delete(values, name)
			changed = true
		}
	}
	if !changed {
		return
	}
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			obs.Logger().Debug("credentials file remove failed", zap.Error(err))
		}
		return
	}
	f.save(values)
}

func (f *FileStore) load() map[string]string {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			obs.Logger().Debug("credentials file read failed", zap.Error(err))
		}
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		obs.Logger().Debug("credentials file malformed", zap.Error(err))
		return make(map[string]string)
	}
	return values
}

func (f *FileStore) save(values map[string]string) {
	data, err := json.Marshal(values)
	if err != nil {
		obs.Logger().Debug("credentials marshal failed", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		obs.Logger().Debug("credentials dir create failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		obs.Logger().Debug("credentials file write failed", zap.Error(err))
	}
}
