package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wextkit/manifesttools/internal/issues"
	"github.com/wextkit/manifesttools/internal/severity"
)

// errorPrinter renders engine error messages. The engine localizes keyword
// failures through x/text; we pin English so diagnostics are stable.
var errorPrinter = message.NewPrinter(language.English)

// compileSchema compiles one resolved schema document. The document tree is
// round-tripped through JSON so the engine sees canonical value types
// regardless of which decoder produced it.
func compileSchema(id VariantID, doc map[string]any) (*jsonschema.Schema, error) {
	normalized, err := normalizeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("validator: schema %s: %w", id, err)
	}

	url := fmt.Sprintf("manifesttools:///%s.json", id)
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	if err := compiler.AddResource(url, normalized); err != nil {
		return nil, fmt.Errorf("validator: schema %s: %w", id, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("validator: schema %s: %w", id, err)
	}
	return schema, nil
}

// normalizeDocument round-trips a decoded tree through JSON so numbers,
// keys, and nested containers match what the schema engine expects.
func normalizeDocument(doc any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot normalize document: %w", err)
	}
	normalized, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot normalize document: %w", err)
	}
	return normalized, nil
}

// engineIssues converts a schema engine failure into diagnostics. The engine
// reports a tree: interior nodes restate which composition branch failed and
// carry no actionable keyword, so they are tagged as composition artifacts
// and filtered before results reach callers.
func engineIssues(err error) []issues.Issue {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []issues.Issue{{
			Keyword:  "schema",
			Path:     "/",
			Message:  err.Error(),
			Severity: severity.SeverityError,
		}}
	}

	flat := flattenEngineError(ve, nil)
	out := flat[:0]
	for _, issue := range flat {
		if issue.IsArtifact() {
			continue
		}
		out = append(out, issue)
	}
	if len(out) == 0 {
		// Every node was structural; keep the failure visible.
		out = append(out, issues.Issue{
			Keyword:  "schema",
			Path:     pointerPath(ve.InstanceLocation),
			Message:  "document does not match any allowed form",
			Severity: severity.SeverityError,
		})
	}
	return out
}

// flattenEngineError walks the engine's error tree depth-first, converting
// every node into an issue.
func flattenEngineError(ve *jsonschema.ValidationError, out []issues.Issue) []issues.Issue {
	keyword := engineKeyword(ve)
	issue := issues.Issue{
		Keyword:  keyword,
		Path:     pointerPath(ve.InstanceLocation),
		Message:  ve.ErrorKind.LocalizedString(errorPrinter),
		Severity: severity.SeverityError,
	}
	if len(ve.Causes) > 0 || keyword == "" {
		issue.Keyword = issues.KeywordComposition
	}
	out = append(out, issue)

	for _, cause := range ve.Causes {
		out = flattenEngineError(cause, out)
	}
	return out
}

// engineKeyword extracts the failing keyword name from an engine error node.
func engineKeyword(ve *jsonschema.ValidationError) string {
	path := ve.ErrorKind.KeywordPath()
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// pointerPath renders an instance location as a JSON pointer. The document
// root is "/".
func pointerPath(location []string) string {
	if len(location) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, segment := range location {
		segment = strings.ReplaceAll(segment, "~", "~0")
		segment = strings.ReplaceAll(segment, "/", "~1")
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}
