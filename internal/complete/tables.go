// internal/complete/tables.go
package complete

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
)

// dataFile is the TOML schema of an external completion data file. Any
// section present replaces the corresponding built-in table; absent
// sections keep their defaults.
type dataFile struct {
	Patterns   map[string]string   `toml:"patterns"`
	Hashes     map[string]string   `toml:"hashes"` // decimal signed hash -> category
	Devices    map[string]string   `toml:"devices"`
	Properties map[string][]string `toml:"properties"`
	Keywords   []string            `toml:"keywords"`
	Functions  []string            `toml:"functions"`
}

// Load reads completion tables from a TOML file, overlaying them on the
// built-in defaults.
func Load(path string) (*Data, error) {
	data := Default()
	file := dataFile{}
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse completion data '%s': %w", path, err)
	}
	if len(meta.Undecoded()) > 0 {
		logger.Warnf("Completion data '%s': Unrecognized keys: %v", path, meta.Undecoded())
	}

	if len(file.Patterns) > 0 {
		data.NamePatterns = file.Patterns
	}
	if len(file.Hashes) > 0 {
		hashes := make(map[int32]string, len(file.Hashes))
		for key, category := range file.Hashes {
			hash, err := strconv.ParseInt(key, 10, 32)
			if err != nil {
				logger.Warnf("Completion data '%s': invalid hash key %q", path, key)
				continue
			}
			hashes[int32(hash)] = category
		}
		data.DeviceHashes = hashes
	}
	if len(file.Devices) > 0 {
		data.DeviceNames = file.Devices
	}
	if len(file.Properties) > 0 {
		if _, ok := file.Properties[Unknown]; !ok {
			// The fallback list must always exist.
			file.Properties[Unknown] = data.Properties[Unknown]
		}
		data.Properties = file.Properties
	}
	if len(file.Keywords) > 0 {
		data.Keywords = file.Keywords
	}
	if len(file.Functions) > 0 {
		data.Functions = file.Functions
	}
	return data, nil
}

// LoadOrDefault loads external tables when a path is configured,
// falling back to the built-in defaults on any failure.
func LoadOrDefault(path string) *Data {
	if path == "" {
		return Default()
	}
	data, err := Load(path)
	if err != nil {
		logger.Warnf("Completion: %v, using built-in tables", err)
		return Default()
	}
	logger.Infof("Completion: loaded data tables from %s", path)
	return data
}
