package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/magiconair/properties"
)

// knownKeys are the recognised property names. Properties keys are case
// sensitive; viper is not, so near misses are rejected here.
var knownKeys = []string{
	"baseUrl",
	"apiKey",
	"unblockKey",
	"logging.level",
	"logging.format",
	"logging.color",
	"logging.file",
}

// readProperties parses a properties file into a nested map. Dotted keys
// such as "logging.level" become {"logging": {"level": ...}}. Values are
// taken literally: "${...}" is not expanded.
func readProperties(path string) (map[string]any, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %s: %v", ErrLoad, ErrMalformed, path, err)
	}

	out := make(map[string]any)
	for _, key := range props.Keys() {
		if err := checkKeyCase(key); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
		}

		value, _ := props.Get(key)
		if err := setNested(out, strings.Split(key, "."), value); err != nil {
			return nil, fmt.Errorf("%w: %w: %s: %v", ErrLoad, ErrMalformed, path, err)
		}
	}
	return out, nil
}

// checkKeyCase fails for keys that differ from a known key only in case
func checkKeyCase(key string) error {
	for _, known := range knownKeys {
		if key != known && strings.EqualFold(key, known) {
			return fmt.Errorf("property %q must be spelled %q", key, known)
		}
	}
	return nil
}

func setNested(m map[string]any, path []string, value string) error {
	for i, part := range path[:len(path)-1] {
		next, ok := m[part]
		if !ok {
			child := make(map[string]any)
			m[part] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q conflicts with %q", strings.Join(path, "."), strings.Join(path[:i+1], "."))
		}
		m = child
	}

	last := path[len(path)-1]
	if _, ok := m[last].(map[string]any); ok {
		return fmt.Errorf("key %q conflicts with nested keys", strings.Join(path, "."))
	}
	m[last] = value
	return nil
}
