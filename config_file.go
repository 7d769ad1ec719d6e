package linelog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// ReadConfigFile loads a Config from a YAML (.yaml, .yml) or JSON (.json) file.
// Keys missing from the file keep their defaults. Example YAML:
//
//	file_name: TejaLogs
//	rotation:
//	  enabled: true
//	  max_lines: 15
//	timezone: local
//	time_pattern: dd-MMM-yyyy hh:mm:ss aa
//	location: private
func ReadConfigFile(path string) (Config, error) {
	var parser koanf.Parser

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	if err := config.check(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	return config, nil
}
