package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix prefixes the environment variables read by Env.
const DefaultEnvPrefix = "RICHTEXT_"

// Env reads settings from prefixed environment variables.
// RICHTEXT_KEYS_STRATEGY sets keys.strategy; RICHTEXT_ELEMENTS_IMAGE_VOID
// sets elements.image.void. Aliases map a full variable name to a
// setting path and take precedence.
type Env struct {
	Prefix  string
	Aliases map[string]string

	// Environ defaults to os.Environ.
	Environ func() []string
}

// NewEnv creates an environment source with the default prefix and aliases.
func NewEnv() *Env {
	return &Env{
		Prefix: DefaultEnvPrefix,
		Aliases: map[string]string{
			"RICHTEXT_LOG_LEVEL":    "logging.level",
			"RICHTEXT_KEY_STRATEGY": "keys.strategy",
			"RICHTEXT_KEY_PREFIX":   "keys.prefix",
		},
	}
}

// Load implements Source.
func (l *Env) Load() (map[string]any, error) {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	tree := make(map[string]any)
	for _, kv := range environ() {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.Prefix) {
			continue
		}
		dotted, ok := l.Aliases[name]
		if !ok {
			dotted = l.settingPath(name)
		}
		if dotted == "" {
			continue
		}
		Set(tree, dotted, parseEnvValue(raw))
	}
	return tree, nil
}

// settingPath lowercases the name and turns underscores into dots.
func (l *Env) settingPath(name string) string {
	name = strings.Trim(strings.TrimPrefix(name, l.Prefix), "_")
	return strings.ReplaceAll(strings.ToLower(name), "_", ".")
}

// parseEnvValue converts booleans, integers, floats and JSON literals;
// anything else stays a string.
func parseEnvValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		if gjson.Valid(s) {
			return gjson.Parse(s).Value()
		}
	}
	return s
}
