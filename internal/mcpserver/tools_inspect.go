package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/restdoc/internal/issues"
	"github.com/erraggy/restdoc/specdoc"
)

type inspectInput struct {
	Model   modelInput       `json:"model"              jsonschema:"The Source Model to inspect"`
	Options generateSettings `json:"options,omitempty"  jsonschema:"Generation options"`
	Method  string           `json:"method,omitempty"   jsonschema:"Filter operations by HTTP method"`
	Path    string           `json:"path,omitempty"     jsonschema:"Filter operations by path template; * matches one segment"`
	Tag     string           `json:"tag,omitempty"      jsonschema:"Filter operations by tag"`
	Kind    string           `json:"kind,omitempty"     jsonschema:"Filter diagnostics by kind, e.g. PathCollision or UnresolvedType"`
	GroupBy string           `json:"group_by,omitempty" jsonschema:"Return operation counts grouped by tag or method instead of operations"`
	Offset  int              `json:"offset,omitempty"   jsonschema:"Skip the first N operations"`
	Limit   int              `json:"limit,omitempty"    jsonschema:"Maximum number of operations to return (default: RESTDOC_INSPECT_LIMIT)"`
}

type operationSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source"`
	Parameters  int      `json:"parameters"`
	Response    string   `json:"response"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

type inspectOutput struct {
	Nodes       int                `json:"nodes"`
	Discovered  int                `json:"discovered"`
	Total       int                `json:"total"`
	Matched     int                `json:"matched"`
	Returned    int                `json:"returned"`
	Operations  []operationSummary `json:"operations,omitempty"`
	Groups      []groupCount       `json:"groups,omitempty"`
	Schemas     []string           `json:"schemas,omitempty"`
	IssueCount  int                `json:"issue_count"`
	Diagnostics []issueSummary     `json:"diagnostics,omitempty"`
}

var inspectGroupBy = []string{"tag", "method"}

func handleInspect(ctx context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	if err := validateGroupBy(input.GroupBy, inspectGroupBy); err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	if input.Kind != "" && !slices.Contains(knownKinds(), input.Kind) {
		return errResult(fmt.Errorf("unknown diagnostic kind %q; valid values: %s", input.Kind, strings.Join(knownKinds(), ", "))), inspectOutput{}, nil
	}

	result, err := input.Model.generate(ctx, input.Options)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	doc := result.Document

	all := doc.Operations()
	matched := filterOperations(all, input)

	output := inspectOutput{
		Nodes:      result.NodeCount,
		Discovered: result.DiscoveredOperations,
		Total:      len(all),
		Matched:    len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(op *specdoc.Operation) []string {
			if strings.EqualFold(input.GroupBy, "method") {
				return []string{op.Verb}
			}
			return op.Tags
		})
	} else {
		page := paginate(matched, input.Offset, input.Limit)
		output.Returned = len(page)
		output.Operations = makeSlice[operationSummary](len(page))
		for _, op := range page {
			output.Operations = append(output.Operations, summarizeOperation(op))
		}
	}

	output.Schemas = makeSlice[string](len(doc.Schemas))
	for _, s := range doc.Schemas {
		output.Schemas = append(output.Schemas, s.Name)
	}

	diagnostics := issues.List(result.Issues)
	if input.Kind != "" {
		diagnostics = diagnostics.OfKind(issues.Kind(input.Kind))
	}
	output.IssueCount = len(diagnostics)
	output.Diagnostics = summarizeIssues(diagnostics)

	return nil, output, nil
}

func filterOperations(ops []*specdoc.Operation, input inspectInput) []*specdoc.Operation {
	var out []*specdoc.Operation
	for _, op := range ops {
		if input.Method != "" && !strings.EqualFold(op.Verb, input.Method) {
			continue
		}
		if !matchPath(op.Path, input.Path) {
			continue
		}
		if input.Tag != "" && !hasTag(op.Tags, input.Tag) {
			continue
		}
		out = append(out, op)
	}
	return out
}

// matchPath matches a path template against a pattern where each "*"
// segment matches exactly one template segment.
func matchPath(pathTemplate, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return pathTemplate == pattern
	}
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(pathTemplate, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i, pp := range patternParts {
		if pp != "*" && pp != pathParts[i] {
			return false
		}
	}
	return true
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func summarizeOperation(op *specdoc.Operation) operationSummary {
	s := operationSummary{
		Method:      op.Verb,
		Path:        op.Path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Tags:        op.Tags,
		Source:      op.Source.String(),
		Parameters:  len(op.Parameters),
		Response:    "none",
		Deprecated:  op.Deprecated,
	}
	if op.Response != nil && !op.Response.Type.IsNone() {
		s.Response = op.Response.Type.String()
	}
	return s
}

func knownKinds() []string {
	return []string{
		string(issues.KindConfigurationCycle),
		string(issues.KindParameterBindingConflict),
		string(issues.KindPathCollision),
		string(issues.KindUnmatchedDocumentation),
		string(issues.KindUnresolvedType),
		string(issues.KindInvalidPath),
	}
}
