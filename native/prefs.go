package native

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// prefKeyLibrary stores the absolute path of the last library that loaded
// successfully, so later starts can skip the full search.
const prefKeyLibrary = "native.library"

// Preferences is the small user-scoped persistent store backing the
// resolver. It holds a single key today but reads/writes a regular YAML
// config file so it can grow.
type Preferences struct {
	v    *viper.Viper
	path string
}

// OpenPreferences loads (or initializes) the preference file in dir. A
// missing file is not an error; it is created on first write.
func OpenPreferences(dir string) (*Preferences, error) {
	v := viper.New()
	path := filepath.Join(dir, "preferences.yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return &Preferences{v: v, path: path}, nil
}

// DefaultPreferences opens the preference store under the user config dir.
func DefaultPreferences() (*Preferences, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return OpenPreferences(filepath.Join(base, "fluidgo"))
}

// Library returns the persisted library path, or "" if none.
func (p *Preferences) Library() string {
	return p.v.GetString(prefKeyLibrary)
}

// SetLibrary persists the resolved library path.
func (p *Preferences) SetLibrary(path string) error {
	p.v.Set(prefKeyLibrary, path)
	return p.write()
}

// ClearLibrary drops a stale preference, typically after the persisted path
// failed to load again.
func (p *Preferences) ClearLibrary() error {
	p.v.Set(prefKeyLibrary, "")
	return p.write()
}

func (p *Preferences) write() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return p.v.WriteConfigAs(p.path)
}
