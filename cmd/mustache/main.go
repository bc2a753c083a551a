// mustache renders a mustache template file against a data file and
// writes the result to stdout.
//
// Data files may be YAML (.yaml/.yml) or JSON (.json/.jsonc; comments
// and trailing commas are tolerated). Partials are supplied as
// name=file pairs and referenced from the template as {{>name}}.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/benjaminschreck/go-mustache/pkg/mustache"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var dataPath string
	var partialFlags []string
	var extended bool
	var showVersion bool

	flagSet := pflag.NewFlagSet("mustache", pflag.ContinueOnError)
	flagSet.StringVarP(&dataPath, "data", "d", "", "path to a YAML or JSON data file (default: empty context)")
	flagSet.StringArrayVarP(&partialFlags, "partial", "p", nil, "named partial as name=file (repeatable)")
	flagSet.BoolVar(&extended, "extended", false, "enable the structured-data extension ({{@}}, {{$path}}, {{%path}}, {{#-top-}})")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		fmt.Printf("mustache version %s\n", version)
		return nil
	}

	if flagSet.NArg() != 1 {
		printHelp(flagSet)
		return fmt.Errorf("expected exactly one template file, got %d arguments", flagSet.NArg())
	}
	templatePath := flagSet.Arg(0)

	source, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	partials, err := loadPartials(partialFlags)
	if err != nil {
		return err
	}

	value, err := loadData(dataPath)
	if err != nil {
		return err
	}

	config := mustache.GetGlobalConfig()
	config.ExtendedJSON = config.ExtendedJSON || extended
	engine := mustache.NewWithConfig(config)

	tmpl, err := engine.CompileStringWithPartials(string(source), partials)
	if err != nil {
		return err
	}

	return tmpl.RenderValue(os.Stdout, value)
}

func loadPartials(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	partials := make(map[string]string, len(flags))
	for _, flag := range flags {
		name, path, ok := strings.Cut(flag, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --partial %q: expected name=file", flag)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read partial %q: %w", name, err)
		}
		partials[name] = string(source)
	}
	return partials, nil
}

func loadData(path string) (mustache.Value, error) {
	if path == "" {
		return mustache.Mapping{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return mustache.ValueFromYAML(data)
	case ".json", ".jsonc":
		return mustache.ValueFromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported data file extension %q (want .yaml, .yml, .json or .jsonc)", filepath.Ext(path))
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Println("mustache - render a mustache template")
	fmt.Println()
	fmt.Println("Usage: mustache [flags] <template-file>")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Print(flagSet.FlagUsages())
}
