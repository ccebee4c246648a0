// Package output provides colored, user-facing CLI output helpers.
package output

import (
	"os"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

// quiet suppresses Success/Info/Warn when set. Error always prints.
var quiet bool

// SetQuiet toggles suppression of non-error output.
func SetQuiet(q bool) {
	quiet = q
}

func Success(format string, a ...interface{}) {
	if quiet {
		return
	}
	successColor.Printf("✓ "+format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	if quiet {
		return
	}
	infoColor.Printf(format+"\n", a...)
}

func Warn(format string, a ...interface{}) {
	if quiet {
		return
	}
	warnColor.Printf("⚠ "+format+"\n", a...)
}

// JSON writes v to stdout as indented JSON, regardless of quiet mode.
func JSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
