package rules

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaBytes []byte

// InputError reports an unusable source document: a missing file, a wrong
// extension, or content that does not parse or validate.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Load reads and parses a rule document from a file path.
func Load(path string) (*Document, error) {
	data, err := readSource(path, func(p string) (fs.FileInfo, error) { return os.Stat(p) }, os.ReadFile)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return doc, nil
}

// LoadFS is like Load but reads from an fs.FS.
func LoadFS(fsys fs.FS, path string) (*Document, error) {
	data, err := readSource(path,
		func(p string) (fs.FileInfo, error) { return fs.Stat(fsys, p) },
		func(p string) ([]byte, error) { return fs.ReadFile(fsys, p) })
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return doc, nil
}

// LoadRaw reads a rule document into a generic structure, skipping schema
// validation. Used for ad-hoc queries against the source file.
func LoadRaw(path string) (any, error) {
	data, err := readSource(path, func(p string) (fs.FileInfo, error) { return os.Stat(p) }, os.ReadFile)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &raw); err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return raw, nil
}

func readSource(path string, stat func(string) (fs.FileInfo, error), read func(string) ([]byte, error)) ([]byte, error) {
	info, err := stat(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &InputError{Path: path, Err: errors.New("not a regular file")}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
	default:
		return nil, &InputError{Path: path, Err: fmt.Errorf("unsupported file extension %q (expected .json or .jsonc)", filepath.Ext(path))}
	}
	data, err := read(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return data, nil
}

func parseDocument(data []byte) (*Document, error) {
	data = jsonc.ToJSONInPlace(data)
	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}

	// Decode via the token stream so that rule set declaration order is
	// preserved; unmarshalling into a map would lose it.
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("document root must be an object")
	}

	doc := &Document{index: make(map[string]*RuleSet)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyTok)
		}
		set := &RuleSet{Name: name}
		if err := dec.Decode(set); err != nil {
			return nil, fmt.Errorf("failed to parse rule set %s: %w", name, err)
		}
		if err := doc.add(set); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// validateAgainstSchema validates the document content against the embedded
// JSON schema. Note that the schema accepts any string for a rule action:
// unrecognized actions are dropped at render time, not rejected at load time.
func validateAgainstSchema(jsonData []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("schema validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
