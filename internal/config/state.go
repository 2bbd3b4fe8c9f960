package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const lastModuleKey = "lastModule"

// StateStore remembers the last mounted module in a small YAML file. It uses
// its own viper instance so saving never writes arcade.yaml.
type StateStore struct {
	path string
	v    *viper.Viper
}

// OpenState reads the state file at path. A missing file yields an empty
// store.
func OpenState(path string) (*StateStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading state file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading state file: %w", err)
	}
	return &StateStore{path: path, v: v}, nil
}

// Path is the backing file.
func (s *StateStore) Path() string { return s.path }

func (s *StateStore) LastModule() string {
	return s.v.GetString(lastModuleKey)
}

func (s *StateStore) SaveLastModule(name string) error {
	s.v.Set(lastModuleKey, name)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating state dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("error writing state file: %w", err)
	}
	return nil
}
