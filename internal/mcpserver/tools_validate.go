package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wextkit/manifesttools/validator"
)

type validateInput struct {
	Path     string         `json:"path,omitempty"     jsonschema:"Filesystem path to the document (YAML or JSON)"`
	Document map[string]any `json:"document,omitempty" jsonschema:"The document inline, already decoded; alternative to path"`
	Kind     string         `json:"kind,omitempty"     jsonschema:"Document kind: manifest, manifest-v3, theme, langpack, dictionary, or messages (default manifest)"`
}

type validateDiagnostic struct {
	Keyword  string `json:"keyword"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type validateOutput struct {
	Valid           bool                 `json:"valid"`
	Variant         string               `json:"variant"`
	DiagnosticCount int                  `json:"diagnostic_count"`
	Diagnostics     []validateDiagnostic `json:"diagnostics,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	var opts []validator.Option
	if input.Path != "" {
		opts = append(opts, validator.WithFilePath(input.Path))
	}
	if input.Document != nil {
		opts = append(opts, validator.WithDocument(input.Document))
	}
	if input.Kind != "" {
		opts = append(opts, validator.WithKind(validator.VariantID(input.Kind)))
	}

	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:           result.Valid,
		Variant:         string(result.Variant),
		DiagnosticCount: len(result.Diagnostics),
	}
	for _, d := range result.Diagnostics {
		output.Diagnostics = append(output.Diagnostics, validateDiagnostic{
			Keyword:  d.Keyword,
			Path:     d.Path,
			Message:  d.Message,
			Severity: d.Severity.String(),
		})
	}
	return nil, output, nil
}
