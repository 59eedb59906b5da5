package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save persists graph data to path as JSON, using a temp-file-then-rename
// so a crash mid-write never leaves a truncated graph on disk.
func Save(data *Data, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create graph directory: %w", err)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create graph temp file: %w", err)
	}

	if err := json.NewEncoder(file).Encode(data); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("encode graph data: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close graph temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename graph file: %w", err)
	}

	return nil
}

// Load reads graph data previously written by Save. A missing file is not
// an error - it simply means no graph has been built yet.
func Load(path string) (*Data, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Data{}, nil
		}
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer file.Close()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph data: %w", err)
	}
	return &data, nil
}
