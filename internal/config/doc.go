// Package config loads richtext settings.
//
// Settings come from two layers, lowest priority first:
//
//	┌─────────────────────────────┐
//	│  2. Environment Variables   │  ← RICHTEXT_*
//	├─────────────────────────────┤
//	│  1. Config File             │  ← richtext.toml (may @include others)
//	└─────────────────────────────┘
//
// over built-in defaults. A config file looks like:
//
//	[keys]
//	strategy = "sequence"   # or "uuid"
//	prefix = "n"
//
//	[logging]
//	level = "debug"
//
//	[elements.image]
//	void = true
//
//	[elements.link]
//	inline = true
//
// The elements table is the schema the codec consults when a record omits
// its void or inline flag.
//
// # Basic Usage
//
//	cfg, err := config.Load("richtext.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	keys, _ := cfg.KeyGenerator()
//	dec := codec.Decoder{Schema: cfg.Schema(), Keys: keys}
package config
