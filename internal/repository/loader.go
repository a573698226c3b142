package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"base-resolver/internal/schema"
)

// LoadPaths reads YAML bundles from files and directories into a new Memory.
// Directories are scanned (non-recursively) for *.yaml and *.yml files in
// lexical order.
func LoadPaths(paths ...string) (*Memory, error) {
	mem := NewMemory()

	for _, p := range paths {
		files, err := expandPath(p)
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			if err := loadFileInto(mem, file); err != nil {
				return nil, err
			}
		}
	}

	return mem, nil
}

func loadFileInto(mem *Memory, file string) error {
	b, err := schema.LoadFile(file)
	if err != nil {
		return err
	}

	for i := range b.Definitions {
		if err := mem.Register(&b.Definitions[i]); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	return nil
}

func expandPath(p string) ([]string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", p, err)
	}

	if !info.IsDir() {
		return []string{p}, nil
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(p, e.Name()))
		}
	}

	slices.Sort(files)

	return files, nil
}
