// Command json2ort converts a JSON file to an ORT document.
//
// By default the output is written next to the input with a .ort
// extension; -o redirects it into another directory.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	ort "github.com/BackGwa/go-ort"
	"github.com/BackGwa/go-ort/internal/cli"
)

var CLI struct {
	Input  string `arg:"" help:"Path to input JSON file." type:"existingfile"`
	Output string `help:"Directory to write the ORT file into." short:"o" type:"path"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("json2ort"),
		kong.Description("Convert a JSON file to an ORT document."),
		kong.UsageOnError(),
	)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

func run() error {
	data, err := os.ReadFile(CLI.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", CLI.Input, err)
	}

	value, err := ort.FromJSON(data)
	if err != nil {
		return err
	}

	out := cli.OutputPath(CLI.Input, CLI.Output, ".ort")
	if err := ort.WriteFile(out, value); err != nil {
		return err
	}
	return nil
}
