package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Only the documented fields are constrained; anything else passes through.
const baseSchemaJSON = `{
  "type": "object",
  "required": ["label", "capture_target"],
  "properties": {
    "label":          {"type": "string", "minLength": 1},
    "capture_target": {"type": "string", "minLength": 1},
    "test_folder":    {"type": "string", "minLength": 1},
    "scenarios": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "label":       {"type": "string"},
          "output_file": {"type": "string"}
        }
      }
    }
  }
}`

const pageSchemaJSON = `{
  "type": "object",
  "required": ["label"],
  "properties": {
    "label": {"type": "string", "minLength": 1}
  }
}`

var (
	baseSchema = mustSchema(baseSchemaJSON)
	pageSchema = mustSchema(pageSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return schema
}

// FileKind tells base and page config files apart in reports.
type FileKind string

const (
	KindBase FileKind = "base"
	KindPage FileKind = "page"
)

// FileReport is the validation outcome for one config file.
type FileReport struct {
	Path     string
	Kind     FileKind
	Problems []string // schema violations
	Err      error    // the file could not be read or parsed
}

// Valid reports whether the file loaded and matched its schema.
func (r FileReport) Valid() bool {
	return r.Err == nil && len(r.Problems) == 0
}

// ValidateBase checks a base config document against the documented fields.
func ValidateBase(doc map[string]any) ([]string, error) {
	return validate(baseSchema, doc)
}

// ValidatePage checks a page config document against the documented fields.
func ValidatePage(doc map[string]any) ([]string, error) {
	return validate(pageSchema, doc)
}

func validate(schema *gojsonschema.Schema, doc map[string]any) ([]string, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

// Validate checks the base file and every page file of files. Unlike
// ReadConfig it does not stop at the first bad file.
func (r *Resolver) Validate(files ConfigFileSet) []FileReport {
	reports := make([]FileReport, 0, len(files.Tests)+1)
	reports = append(reports, r.validateFile(files.Base, KindBase))
	for _, path := range files.Tests {
		reports = append(reports, r.validateFile(path, KindPage))
	}
	return reports
}

func (r *Resolver) validateFile(path string, kind FileKind) FileReport {
	report := FileReport{Path: path, Kind: kind}

	doc, err := r.ReadJSON(path)
	if err != nil {
		report.Err = err
		return report
	}

	if kind == KindBase {
		report.Problems, report.Err = ValidateBase(doc)
	} else {
		report.Problems, report.Err = ValidatePage(doc)
	}
	r.logger.Debug("validated config", "path", path, "kind", kind, "problems", len(report.Problems))
	return report
}
