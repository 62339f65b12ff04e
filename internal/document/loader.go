package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	documentReadErrorTemplateConstant  = "failed to read document %s: %w"
	documentParseErrorTemplateConstant = "failed to parse document: %w"
)

// ErrDocumentPathRequired indicates that no document path was supplied.
var ErrDocumentPathRequired = errors.New("document path must be provided")

// ParseDefinition decodes a YAML or JSON document export.
func ParseDefinition(content []byte) (Definition, error) {
	var definition Definition
	if unmarshalError := yaml.Unmarshal(content, &definition); unmarshalError != nil {
		return Definition{}, fmt.Errorf(documentParseErrorTemplateConstant, unmarshalError)
	}
	return definition, nil
}

// LoadSnapshot reads a document export from disk and indexes it.
func LoadSnapshot(filePath string) (*Snapshot, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, ErrDocumentPathRequired
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(documentReadErrorTemplateConstant, trimmedPath, readError)
	}

	definition, parseError := ParseDefinition(contentBytes)
	if parseError != nil {
		return nil, parseError
	}

	return NewSnapshot(definition)
}
