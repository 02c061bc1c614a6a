package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/wextkit/manifesttools"
	"github.com/wextkit/manifesttools/compat"
)

// APIFlags contains flags for the api command
type APIFlags struct {
	ManifestVersion int
	Table           string
	Format          string
	Lint            bool
}

// apiReport is the structured output of one api query.
type apiReport struct {
	Namespace           string `json:"namespace" yaml:"namespace"`
	Member              string `json:"member" yaml:"member"`
	ManifestVersion     int    `json:"manifest_version" yaml:"manifest_version"`
	Available           bool   `json:"available" yaml:"available"`
	Temporary           bool   `json:"temporary" yaml:"temporary"`
	Deprecated          bool   `json:"deprecated" yaml:"deprecated"`
	MinRequiredVersion  int    `json:"min_required_version" yaml:"min_required_version"`
	MaxSupportedVersion *int   `json:"max_supported_version,omitempty" yaml:"max_supported_version,omitempty"`
	DeprecationMessage  string `json:"deprecation_message,omitempty" yaml:"deprecation_message,omitempty"`
}

// SetupAPIFlags creates and configures a FlagSet for the api command.
func SetupAPIFlags() (*flag.FlagSet, *APIFlags) {
	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	flags := &APIFlags{}

	fs.IntVar(&flags.ManifestVersion, "mv", compat.DefaultManifestVersion, "manifest version to resolve availability against")
	fs.StringVar(&flags.Table, "table", "", "path to an override compatibility table (default: shipped table)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Lint, "lint", false, "lint the table for authoring inconsistencies instead of querying")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: manifesttools api [flags] <namespace.member>\n\n")
		Writef(fs.Output(), "Query extension API availability against the compatibility table.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  manifesttools api tabs.executeScript\n")
		Writef(fs.Output(), "  manifesttools api -mv 3 tabs.executeScript\n")
		Writef(fs.Output(), "  manifesttools api -table custom.yaml -format json runtime.getBackgroundPage\n")
		Writef(fs.Output(), "  manifesttools api -lint -table custom.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    API is available (or lint found nothing)\n")
		Writef(fs.Output(), "  1    API is unavailable, lint found issues, or the query failed\n")
	}

	return fs, flags
}

// HandleAPI executes the api command
func HandleAPI(args []string) error {
	fs, flags := SetupAPIFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	table := compat.Default()
	if flags.Table != "" {
		loaded, err := compat.LoadTable(flags.Table)
		if err != nil {
			return err
		}
		table = loaded
	}

	if flags.Lint {
		return lintTable(table, flags.Format)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("api command requires exactly one namespace.member argument")
	}

	namespace, member, ok := strings.Cut(fs.Arg(0), ".")
	if !ok || namespace == "" || member == "" {
		return fmt.Errorf("invalid API name %q: expected namespace.member", fs.Arg(0))
	}

	md := &compat.Metadata{ManifestVersion: &flags.ManifestVersion}
	report := apiReport{
		Namespace:          namespace,
		Member:             member,
		ManifestVersion:    flags.ManifestVersion,
		Available:          table.HasAPI(namespace, member, md),
		Temporary:          table.IsTemporary(namespace, member),
		Deprecated:         table.IsDeprecated(namespace, member, md),
		MinRequiredVersion: table.MinRequiredVersion(namespace, member, md),
	}
	if max, bounded := table.MaxSupportedVersion(namespace, member, md); bounded {
		report.MaxSupportedVersion = &max
	}
	if entry, ok := table.Deprecated[fs.Arg(0)]; ok && report.Deprecated {
		report.DeprecationMessage = entry.Message
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
	} else {
		printAPIReport(report)
	}

	if !report.Available {
		os.Exit(1)
	}
	return nil
}

func printAPIReport(r apiReport) {
	Writef(os.Stderr, "Extension API Support\n")
	Writef(os.Stderr, "=====================\n\n")
	Writef(os.Stderr, "manifesttools version: %s\n", manifesttools.Version())
	Writef(os.Stderr, "API: %s.%s\n", r.Namespace, r.Member)
	Writef(os.Stderr, "Manifest Version: %d\n\n", r.ManifestVersion)

	if r.Available {
		Writef(os.Stderr, "✓ Available")
	} else {
		Writef(os.Stderr, "✗ Not available")
	}
	if r.Temporary {
		Writef(os.Stderr, " (temporary API, unconditionally available)")
	}
	Writef(os.Stderr, "\n")

	if r.MinRequiredVersion > 0 {
		Writef(os.Stderr, "Minimum manifest version: %d\n", r.MinRequiredVersion)
	}
	if r.MaxSupportedVersion != nil {
		Writef(os.Stderr, "Maximum manifest version: %d\n", *r.MaxSupportedVersion)
	}
	if r.Deprecated {
		Writef(os.Stderr, "⚠ Deprecated")
		if r.DeprecationMessage != "" {
			Writef(os.Stderr, ": %s", r.DeprecationMessage)
		}
		Writef(os.Stderr, "\n")
	}
}

func lintTable(table *compat.Table, format string) error {
	findings := table.Lint()

	if format == FormatJSON || format == FormatYAML {
		if err := OutputStructured(findings, format); err != nil {
			return err
		}
	} else {
		if len(findings) == 0 {
			Writef(os.Stderr, "✓ Table is consistent\n")
			return nil
		}
		Writef(os.Stderr, "Table findings (%d):\n", len(findings))
		for _, f := range findings {
			Writef(os.Stderr, "  %s\n", f.String())
		}
	}

	if len(findings) > 0 {
		os.Exit(1)
	}
	return nil
}
