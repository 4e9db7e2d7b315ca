// Package cli holds shared helpers for the command-line converters.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	ort "github.com/BackGwa/go-ort"
)

// FormatError renders err for terminal output. Parse errors are shown
// with the offending line number and source text so the fault can be
// found in an editor; other errors print as-is.
func FormatError(err error) string {
	var pe *ort.ParseError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	return fmt.Sprintf("%s | %s\n%s : %s",
		color.BlueString("%3d", pe.Line),
		color.WhiteString("%s", pe.Src),
		color.RedString("Exception"),
		color.WhiteString("%s", pe.Message),
	)
}

// OutputPath derives the destination file for a converted input: the
// input path with its extension replaced by ext, or, when outDir is
// set, a file of the same stem inside outDir.
func OutputPath(input, outDir, ext string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if outDir != "" {
		return filepath.Join(outDir, stem+ext)
	}
	return filepath.Join(filepath.Dir(input), stem+ext)
}
