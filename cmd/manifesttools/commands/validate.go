package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/wextkit/manifesttools"
	"github.com/wextkit/manifesttools/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Kind   string
	MV3    bool
	Quiet  bool
	Format string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Kind, "kind", string(validator.VariantManifest), "document kind: manifest, manifest-v3, theme, langpack, dictionary, or messages")
	fs.BoolVar(&flags.MV3, "mv3", false, "validate with manifest version 3 enabled (shorthand for -kind manifest-v3)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: manifesttools validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate a browser extension document (YAML or JSON) against its schema variant.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  manifesttools validate manifest.json\n")
		Writef(fs.Output(), "  manifesttools validate -mv3 manifest.json\n")
		Writef(fs.Output(), "  manifesttools validate -kind theme theme/manifest.json\n")
		Writef(fs.Output(), "  cat manifest.json | manifesttools validate -q -\n")
		Writef(fs.Output(), "  manifesttools validate -format json manifest.json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document is valid\n")
		Writef(fs.Output(), "  1    Document is invalid or could not be processed\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}

	docPath := fs.Arg(0)

	// Validate format flag early to fail fast before reading the document
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	kind := validator.VariantID(flags.Kind)
	if flags.MV3 {
		kind = validator.VariantManifestV3
	}

	doc, err := ReadDocument(docPath)
	if err != nil {
		return err
	}

	result, err := validator.ValidateWithOptions(
		validator.WithDocument(doc),
		validator.WithKind(kind),
	)
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	}

	// Text output goes to stderr so structured pipelines stay clean.
	if !flags.Quiet {
		Writef(os.Stderr, "Extension Document Validator\n")
		Writef(os.Stderr, "============================\n\n")
		Writef(os.Stderr, "manifesttools version: %s\n", manifesttools.Version())
		Writef(os.Stderr, "Document: %s\n", FormatDocPath(docPath))
		Writef(os.Stderr, "Variant: %s\n\n", result.Variant)

		if len(result.Diagnostics) > 0 {
			Writef(os.Stderr, "Diagnostics (%d):\n", len(result.Diagnostics))
			for _, d := range result.Diagnostics {
				Writef(os.Stderr, "  %s\n", d.String())
			}
			Writef(os.Stderr, "\n")
		}

		if result.Valid {
			Writef(os.Stderr, "✓ Validation passed\n")
		} else {
			Writef(os.Stderr, "✗ Validation failed: %d diagnostic(s)\n", len(result.Diagnostics))
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
