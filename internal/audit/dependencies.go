package audit

import (
	"context"
	"io"

	"github.com/temirov/docaudit/internal/document"
	"github.com/temirov/docaudit/internal/links"
)

// Workspace is a loaded document the checks run against.
type Workspace interface {
	document.Host
	Select(identifiers []string) ([]document.Node, error)
	Export(writer io.Writer) error
	ModifiedIdentifiers() []string
}

// DocumentLoader opens the document found at a path.
type DocumentLoader interface {
	Load(executionContext context.Context, documentPath string) (Workspace, error)
}

// SnapshotLoader loads YAML or JSON document exports into in-memory snapshots.
type SnapshotLoader struct{}

// Load reads and indexes the document export at documentPath.
func (SnapshotLoader) Load(executionContext context.Context, documentPath string) (Workspace, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	snapshot, loadError := document.LoadSnapshot(documentPath)
	if loadError != nil {
		return nil, loadError
	}
	return snapshot, nil
}

func resolveLoader(loader DocumentLoader) DocumentLoader {
	if loader == nil {
		return SnapshotLoader{}
	}
	return loader
}

func resolveProber(prober links.Prober, configuration LinksConfiguration) links.Prober {
	if prober != nil {
		return prober
	}
	return links.NewHTTPProber(configuration.ProbeTimeout, configuration.UserAgent)
}
