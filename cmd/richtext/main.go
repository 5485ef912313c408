// Package main is the entry point for the richtext inspection tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/match"

	"github.com/dshills/richtext/internal/codec"
	"github.com/dshills/richtext/internal/config"
	"github.com/dshills/richtext/internal/engine"
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/position"
	"github.com/dshills/richtext/internal/engine/value"
	"github.com/dshills/richtext/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var errUsage = errors.New("usage")

// options holds parsed command-line flags.
type options struct {
	configPath string
	unit       position.Unit
	reverse    bool
	logLevel   string
	types      string
	format     string
	split      bool
	file       string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 2
	}
	if opts.file == "" {
		fmt.Fprintf(stdout, "richtext %s\nCommit: %s\nBuilt: %s\n", version, commit, date)
		return 0
	}

	if err := inspect(opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	var unit string
	var showVersion bool

	fs := flag.NewFlagSet("richtext", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&unit, "unit", "character", "Position unit (offset, character, word, line)")
	fs.BoolVar(&opts.reverse, "reverse", false, "Iterate positions backward")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	fs.StringVar(&opts.types, "types", "*", "Only list texts in blocks whose type matches this pattern")
	fs.StringVar(&opts.format, "format", "text", "Output format (text, json, yaml)")
	fs.BoolVar(&opts.split, "split", false, "Split the block at the collapsed selection before printing")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "richtext - inspect rich-text documents\n\n")
		fmt.Fprintf(stderr, "Usage: richtext [options] document.{json,yaml}\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  richtext doc.json                   List texts and character positions\n")
		fmt.Fprintf(stderr, "  richtext -unit word -reverse doc.json\n")
		fmt.Fprintf(stderr, "  richtext -split -format yaml doc.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if showVersion {
		return opts, nil
	}

	u, err := position.ParseUnit(unit)
	if err != nil {
		return opts, err
	}
	opts.unit = u

	if opts.logLevel != "" {
		if _, ok := logging.ParseLevel(opts.logLevel); !ok {
			return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
		}
	}
	switch opts.format {
	case "text", "json", "yaml":
	default:
		return opts, fmt.Errorf("invalid format %q (must be text, json, or yaml)", opts.format)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return opts, errUsage
	}
	opts.file = fs.Arg(0)
	return opts, nil
}

func inspect(opts options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level := cfg.LogLevel()
	if opts.logLevel != "" {
		level, _ = logging.ParseLevel(opts.logLevel)
	}
	logger := logging.New(logging.Config{Level: level, Output: stderr, Prefix: "richtext"})
	logging.SetDefault(logger)

	keys, err := cfg.KeyGenerator()
	if err != nil {
		return err
	}
	v, err := readValue(opts.file, &codec.Decoder{Schema: cfg.Schema(), Keys: keys})
	if err != nil {
		return err
	}
	logger.Debug("loaded %s", opts.file)

	e := engine.NewFromValue(v, engine.WithKeyGenerator(keys), engine.WithLogger(logger))
	if opts.split {
		if err := e.SplitBlockAtSelection(); err != nil {
			return fmt.Errorf("split: %w", err)
		}
	}

	switch opts.format {
	case "json":
		out, err := codec.EncodeValue(e.Value())
		if err != nil {
			return err
		}
		_, err = stdout.Write(codec.Indent(out))
		return err
	case "yaml":
		out, err := codec.EncodeValueYAML(e.Value())
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}
	return printReport(stdout, e, opts)
}

// readValue decodes a value record, or a bare document record, from path.
// Files ending in .yaml or .yml are read as YAML.
func readValue(path string, dec *codec.Decoder) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if data, err = codec.JSONFromYAML(data); err != nil {
			return value.Value{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if isDocument(data) {
		doc, err := dec.DecodeDocument(data)
		if err != nil {
			return value.Value{}, fmt.Errorf("%s: %w", path, err)
		}
		return value.New(doc), nil
	}
	v, err := dec.DecodeValue(data)
	if err != nil {
		return value.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func isDocument(data []byte) bool {
	return codec.Kind(data) == "document"
}

func printReport(w io.Writer, e *engine.Engine, opts options) error {
	doc := e.Document()

	fmt.Fprintln(w, "texts:")
	it := node.Texts(doc, node.IterOptions{})
	for it.Next() {
		entry := it.Entry()
		block, ok, err := node.ClosestBlock(doc, entry.Path)
		if err != nil {
			return err
		}
		typ := ""
		if ok {
			typ = block.Node.(*node.Element).Type()
		}
		if !match.Match(typ, opts.types) {
			continue
		}
		t := entry.Node.(*node.Text)
		fmt.Fprintf(w, "  %v %s %s %q", entry.Path, typ, t.Key(), t.Text())
		if !t.Marks().IsEmpty() {
			fmt.Fprintf(w, " %s", t.Marks())
		}
		fmt.Fprintln(w)
	}

	direction := "forward"
	if opts.reverse {
		direction = "backward"
	}
	fmt.Fprintf(w, "positions (%s, %s):\n", opts.unit, direction)
	pos := e.Positions(position.Options{Unit: opts.unit, Reverse: opts.reverse})
	for pos.Next() {
		fmt.Fprintf(w, "  %s\n", pos.Point())
	}
	if err := pos.Err(); err != nil {
		return err
	}

	if sel := e.Selection(); sel.IsSet() {
		fmt.Fprintf(w, "selection: %s\n", sel)
		marks, err := e.ActiveMarks(false)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "marks: %s\n", marks)
	}
	return nil
}
