package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

// ConfigFlags contains flags for the config command
type ConfigFlags struct {
	Config string
	Format string
}

// SetupConfigFlags creates and configures a FlagSet for the config command.
func SetupConfigFlags() (*flag.FlagSet, *ConfigFlags) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	flags := &ConfigFlags{}

	fs.StringVar(&flags.Config, "config", "", "naming configuration file to merge over the defaults")
	fs.StringVar(&flags.Format, "format", FormatYAML, "output format: yaml or json")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oacatalog config [flags]\n\n")
		Writef(output, "Print the effective naming configuration.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oacatalog config > naming.yaml\n")
		Writef(output, "  oacatalog config --config naming.yaml --format json\n")
	}

	return fs, flags
}

// HandleConfig executes the config command
func HandleConfig(args []string) error {
	fs, flags := SetupConfigFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("config command takes no arguments")
	}
	return runConfig(flags, os.Stdout)
}

func runConfig(flags *ConfigFlags, stdout io.Writer) error {
	if flags.Format != FormatYAML && flags.Format != FormatJSON {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.Format, FormatYAML, FormatJSON)
	}
	cfg, _, err := ResolveConfig(flags.Config)
	if err != nil {
		return err
	}
	return renderStructured(stdout, cfg, flags.Format)
}
