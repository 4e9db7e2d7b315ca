// Command ort2json converts an ORT document to pretty-printed JSON.
//
// By default the output is written next to the input with a .json
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
	Input  string `arg:"" help:"Path to input ORT file." type:"existingfile"`
	Output string `help:"Directory to write the JSON file into." short:"o" type:"path"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("ort2json"),
		kong.Description("Convert an ORT document to JSON."),
		kong.UsageOnError(),
	)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

func run() error {
	value, err := ort.ParseFile(CLI.Input)
	if err != nil {
		return err
	}

	data, err := ort.ToJSONIndent(value)
	if err != nil {
		return err
	}

	out := cli.OutputPath(CLI.Input, CLI.Output, ".json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
