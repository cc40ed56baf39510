package main

import (
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/studiowm/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  studiowm config validate [--path PATH]")
	fmt.Fprintln(w, "  studiowm config print [--path PATH] [--defaults]")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if isHelpArg(args) {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "validate":
		fs := newFlagSet("validate", "studiowm config validate [--path PATH]", "Load and validate the configuration file.")
		path := fs.String("path", "", "Config file path (default: ~/.config/studiowm/config.yaml)")
		if code := parseFlags(fs, args[1:]); code >= 0 {
			return code
		}
		res, err := config.Load(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !res.Loaded {
			fmt.Printf("config: %s not found, defaults apply\n", res.Path)
			return 0
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := newFlagSet("print", "studiowm config print [--path PATH] [--defaults]", "Print the effective configuration as YAML.")
		path := fs.String("path", "", "Config file path (default: ~/.config/studiowm/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if code := parseFlags(fs, args[1:]); code >= 0 {
			return code
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := config.Load(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
			fmt.Printf("# source: %s\n", res.Path)
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}
