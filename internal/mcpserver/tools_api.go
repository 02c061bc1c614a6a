package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wextkit/manifesttools/compat"
)

type apiSupportInput struct {
	Namespace       string `json:"namespace"                  jsonschema:"API namespace, e.g. tabs"`
	Member          string `json:"member"                     jsonschema:"Member name within the namespace, e.g. executeScript"`
	ManifestVersion *int   `json:"manifest_version,omitempty" jsonschema:"Manifest version to resolve against; omit to use the default (2)"`
	Table           string `json:"table,omitempty"            jsonschema:"Path to an override compatibility table (YAML or JSON); omit to use the shipped table"`
}

type apiSupportOutput struct {
	Available           bool   `json:"available"`
	Temporary           bool   `json:"temporary"`
	Deprecated          bool   `json:"deprecated"`
	MinRequiredVersion  int    `json:"min_required_version"`
	MaxSupportedVersion *int   `json:"max_supported_version,omitempty"`
	DeprecationMessage  string `json:"deprecation_message,omitempty"`
}

func handleAPISupport(_ context.Context, _ *mcp.CallToolRequest, input apiSupportInput) (*mcp.CallToolResult, apiSupportOutput, error) {
	table := compat.Default()
	if input.Table != "" {
		loaded, err := compat.LoadTable(input.Table)
		if err != nil {
			return errResult(err), apiSupportOutput{}, nil
		}
		table = loaded
	}

	var md *compat.Metadata
	if input.ManifestVersion != nil {
		md = &compat.Metadata{ManifestVersion: input.ManifestVersion}
	}

	output := apiSupportOutput{
		Available:          table.HasAPI(input.Namespace, input.Member, md),
		Temporary:          table.IsTemporary(input.Namespace, input.Member),
		Deprecated:         table.IsDeprecated(input.Namespace, input.Member, md),
		MinRequiredVersion: table.MinRequiredVersion(input.Namespace, input.Member, md),
	}
	if max, bounded := table.MaxSupportedVersion(input.Namespace, input.Member, md); bounded {
		output.MaxSupportedVersion = &max
	}
	if entry, ok := table.Deprecated[input.Namespace+"."+input.Member]; ok && output.Deprecated {
		output.DeprecationMessage = entry.Message
	}
	return nil, output, nil
}
