package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/cave-generator/internal/config"
)

// Storage handles file-based persistence for config and presets.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "presets"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// PresetDir returns the directory presets are stored in.
func (s *Storage) PresetDir() string {
	return filepath.Join(s.dir, "presets")
}

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	ok, err := readJSON(path, cfg)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if ok {
		s.log.Info("loaded config from file", "path", path)
	}
	return nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	return WriteFileAtomic(path, func(w io.Writer) error {
		return writeJSON(w, cfg)
	})
}

// LoadPreset reads presets/<name>.json into cfg. Fields missing from the
// preset keep their current values.
func (s *Storage) LoadPreset(name string, cfg *config.Config) error {
	path := filepath.Join(s.PresetDir(), name+".json")
	ok, err := readJSON(path, cfg)
	if err != nil {
		return fmt.Errorf("load preset %s: %w", name, err)
	}
	if !ok {
		return fmt.Errorf("load preset %s: %w", name, os.ErrNotExist)
	}
	s.log.Info("loaded preset", "name", name)
	return nil
}

// Presets returns the names of every stored preset, sorted.
func (s *Storage) Presets() ([]string, error) {
	entries, err := os.ReadDir(s.PresetDir())
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	slices.Sort(names)
	return names, nil
}

// FetchPreset downloads a single preset file from src into the preset
// directory and returns its name. src is any go-getter source: a local path,
// an http(s) URL, a git or s3 address.
func (s *Storage) FetchPreset(ctx context.Context, src string) (string, error) {
	name := presetName(src)
	dst := filepath.Join(s.PresetDir(), name+".json")

	s.log.Info("fetching preset", "src", src, "dst", dst)
	if err := get.GetFile(dst, src, get.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetch preset %s: %w", src, err)
	}
	return name, nil
}

// FetchPresetPack downloads a directory of presets from src and copies every
// JSON file in it into the preset directory. It returns the imported names.
func (s *Storage) FetchPresetPack(ctx context.Context, src string) ([]string, error) {
	tmp, err := os.MkdirTemp(s.dir, "pack-")
	if err != nil {
		return nil, fmt.Errorf("create pack directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	// go-getter wants to create the destination itself.
	dst := filepath.Join(tmp, "pack")
	s.log.Info("fetching preset pack", "src", src)
	if err := get.Get(dst, src, get.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("fetch preset pack %s: %w", src, err)
	}

	entries, err := os.ReadDir(dst)
	if err != nil {
		return nil, fmt.Errorf("read preset pack: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dst, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read preset %s: %w", e.Name(), err)
		}
		var probe config.Config
		if err := json.Unmarshal(data, &probe); err != nil {
			s.log.Warn("skipping malformed preset", "file", e.Name(), "error", err)
			continue
		}

		name := strings.TrimSuffix(e.Name(), ".json")
		target := filepath.Join(s.PresetDir(), e.Name())
		err = WriteFileAtomic(target, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	s.log.Info("imported preset pack", "count", len(names))
	return names, nil
}

// presetName derives a preset name from the last path element of src,
// ignoring go-getter forced-getter prefixes and query strings.
func presetName(src string) string {
	if _, rest, ok := strings.Cut(src, "::"); ok {
		src = rest
	}
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		src = src[:i]
	}
	base := path.Base(filepath.ToSlash(src))
	base = strings.TrimSuffix(base, ".json")
	if base == "" || base == "." || base == "/" {
		return "preset"
	}
	return base
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteFileAtomic writes the output of write to path using a temp file + rename.
func WriteFileAtomic(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
