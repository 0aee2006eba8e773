package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-page-content/internal/runtimeconfig"
	pcpages "github.com/goliatone/go-page-content/pages"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var embeddedSchemas embed.FS

var (
	// ErrSchemaUnavailable marks a configuration fault: the schema files
	// could not be loaded or compiled. Distinct from a payload that fails
	// validation.
	ErrSchemaUnavailable = errors.New("validation: page schema unavailable")
	ErrSchemaValidation  = errors.New("validation: page value failed schema validation")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadValidationError surfaces validation issues with schema-aware context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// PageValidator checks page value documents against the page and block
// JSON schemas. The schemas ship embedded and can be overridden from disk.
type PageValidator struct {
	schema *jsonschema.Schema
	strict bool
}

// NewPageValidator compiles the schemas named by the configuration. A
// load or compile failure is a deployment fault and surfaces as
// ErrSchemaUnavailable.
func NewPageValidator(cfg runtimeconfig.ValidationConfig) (*PageValidator, error) {
	pageSchema, blockSchema, err := loadSchemas(cfg.SchemasPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("block.json", bytes.NewReader(blockSchema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}
	if err := compiler.AddResource("page.json", bytes.NewReader(pageSchema)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}
	compiled, err := compiler.Compile("page.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}

	return &PageValidator{schema: compiled, strict: cfg.Strict}, nil
}

// ValidatePageValue checks the document shape and the uniqueness of block
// ids. In non-strict mode schema violations are tolerated; duplicate block
// ids never are, since dot-path lookups would silently read the first match.
func (v *PageValidator) ValidatePageValue(value *pcpages.Value) error {
	if v == nil || value == nil {
		return nil
	}

	doc, err := toJSONValue(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}

	if v.strict {
		if err := v.schema.Validate(doc); err != nil {
			return &PayloadValidationError{Issues: Issues(err), Cause: err}
		}
	}

	if issue, ok := duplicateBlockID(value); ok {
		return &PayloadValidationError{Issues: []ValidationIssue{issue}}
	}
	return nil
}

func duplicateBlockID(value *pcpages.Value) (ValidationIssue, bool) {
	seen := map[string]struct{}{}
	for i, block := range value.Blocks {
		if _, ok := seen[block.ID]; ok {
			return ValidationIssue{
				Location: fmt.Sprintf("/blocks/%d/id", i),
				Message:  fmt.Sprintf("duplicate block id %q", block.ID),
			}, true
		}
		seen[block.ID] = struct{}{}
	}
	return ValidationIssue{}, false
}

// toJSONValue round-trips the typed document into the generic form the
// schema library validates.
func toJSONValue(value *pcpages.Value) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// loadSchemas prefers the on-disk overrides when a path is configured,
// falling back to the embedded copies.
func loadSchemas(schemasPath string) ([]byte, []byte, error) {
	if dir := strings.TrimSpace(schemasPath); dir != "" {
		pageSchema, err := os.ReadFile(filepath.Join(dir, "page.json"))
		if err != nil {
			return nil, nil, err
		}
		blockSchema, err := os.ReadFile(filepath.Join(dir, "block.json"))
		if err != nil {
			return nil, nil, err
		}
		return pageSchema, blockSchema, nil
	}

	pageSchema, err := embeddedSchemas.ReadFile("schemas/page.json")
	if err != nil {
		return nil, nil, err
	}
	blockSchema, err := embeddedSchemas.ReadFile("schemas/block.json")
	if err != nil {
		return nil, nil, err
	}
	return pageSchema, blockSchema, nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
