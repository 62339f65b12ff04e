package document_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docaudit/internal/document"
)

const (
	snapshotFixtureFileNameConstant = "document.yaml"
	snapshotFixtureContentConstant  = `
text_styles:
  - id: ts-body
    name: Body
    font: Inter
    font_size: 16px
    color: "#111111"
color_styles:
  - id: cs-primary
    name: Primary
    light: "#0055ff"
    dark: "#88aaff"
nodes:
  - id: desktop
    name: Desktop
    type: FrameNode
    attributes:
      width: 1fr
    children:
      - id: hero
        name: Hero
        type: FrameNode
        attributes:
          width: fit-content
          maxWidth: 1200px
        children:
          - id: title
            name: Title
            type: TextNode
            attributes:
              textStyle: ts-body
          - id: card
            name: Card
            type: ComponentInstanceNode
            controls:
              link: /pricing
      - id: footer
        name: Footer
        type: frame
  - id: overlay
    name: Overlay
    type: FrameNode
`
)

func loadFixtureSnapshot(testInstance *testing.T) *document.Snapshot {
	testInstance.Helper()
	fixturePath := filepath.Join(testInstance.TempDir(), snapshotFixtureFileNameConstant)
	require.NoError(testInstance, os.WriteFile(fixturePath, []byte(snapshotFixtureContentConstant), 0o600))

	snapshot, loadError := document.LoadSnapshot(fixturePath)
	require.NoError(testInstance, loadError)
	return snapshot
}

func nodeIdentifiers(nodes []document.Node) []string {
	identifiers := make([]string, 0, len(nodes))
	for _, node := range nodes {
		identifiers = append(identifiers, node.Identifier)
	}
	return identifiers
}

func TestSnapshotNavigation(testInstance *testing.T) {
	snapshot := loadFixtureSnapshot(testInstance)
	executionContext := context.Background()

	require.Equal(testInstance, []string{"desktop", "overlay"}, nodeIdentifiers(snapshot.Roots()))

	desktop, lookupError := snapshot.Lookup("desktop")
	require.NoError(testInstance, lookupError)
	require.Equal(testInstance, document.NodeKindFrame, desktop.Kind)

	children, childrenError := snapshot.Children(executionContext, desktop)
	require.NoError(testInstance, childrenError)
	require.Equal(testInstance, []string{"hero", "footer"}, nodeIdentifiers(children))

	frames, framesError := snapshot.NodesWithKind(executionContext, desktop, document.NodeKindFrame)
	require.NoError(testInstance, framesError)
	require.Equal(testInstance, []string{"hero", "footer"}, nodeIdentifiers(frames))

	card, cardError := snapshot.Lookup("card")
	require.NoError(testInstance, cardError)
	require.True(testInstance, card.IsComponentInstance())

	leafChildren, leafError := snapshot.Children(executionContext, card)
	require.NoError(testInstance, leafError)
	require.Empty(testInstance, leafChildren)
}

func TestSnapshotSelect(testInstance *testing.T) {
	snapshot := loadFixtureSnapshot(testInstance)

	allRoots, allError := snapshot.Select(nil)
	require.NoError(testInstance, allError)
	require.Equal(testInstance, []string{"desktop", "overlay"}, nodeIdentifiers(allRoots))

	selection, selectError := snapshot.Select([]string{"title", " hero "})
	require.NoError(testInstance, selectError)
	require.Equal(testInstance, []string{"title", "hero"}, nodeIdentifiers(selection))

	_, missingError := snapshot.Select([]string{"absent"})
	require.ErrorIs(testInstance, missingError, document.ErrNodeNotFound)
}

func TestSnapshotAttributeWritesAreExported(testInstance *testing.T) {
	snapshot := loadFixtureSnapshot(testInstance)
	executionContext := context.Background()

	footer, lookupError := snapshot.Lookup("footer")
	require.NoError(testInstance, lookupError)

	require.NoError(testInstance, snapshot.SetAttributes(executionContext, footer, document.Attributes{"backgroundColor": "red"}))
	require.NoError(testInstance, snapshot.SetAttributes(executionContext, footer, document.Attributes{"opacity": 0.5}))

	attributes, attributesError := snapshot.Attributes(executionContext, footer)
	require.NoError(testInstance, attributesError)
	require.Equal(testInstance, "red", attributes["backgroundColor"])
	require.Equal(testInstance, []string{"footer"}, snapshot.ModifiedIdentifiers())

	exportBuffer := &bytes.Buffer{}
	require.NoError(testInstance, snapshot.Export(exportBuffer))

	reloadedDefinition, parseError := document.ParseDefinition(exportBuffer.Bytes())
	require.NoError(testInstance, parseError)
	reloaded, reloadError := document.NewSnapshot(reloadedDefinition)
	require.NoError(testInstance, reloadError)

	reloadedFooter, reloadedLookupError := reloaded.Lookup("footer")
	require.NoError(testInstance, reloadedLookupError)
	reloadedAttributes, reloadedAttributesError := reloaded.Attributes(executionContext, reloadedFooter)
	require.NoError(testInstance, reloadedAttributesError)
	require.Equal(testInstance, "red", reloadedAttributes["backgroundColor"])
}

func TestNewSnapshotRejectsInvalidIdentifiers(testInstance *testing.T) {
	testCases := []struct {
		name       string
		definition document.Definition
	}{
		{
			name: "missing_identifier",
			definition: document.Definition{Nodes: []document.NodeRecord{
				{Name: "Nameless"},
			}},
		},
		{
			name: "duplicate_identifier",
			definition: document.Definition{Nodes: []document.NodeRecord{
				{Identifier: "root", Children: []document.NodeRecord{{Identifier: "root"}}},
			}},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			snapshot, snapshotError := document.NewSnapshot(testCase.definition)
			require.Error(subTest, snapshotError)
			require.Nil(subTest, snapshot)
		})
	}
}

func TestLoadSnapshotRequiresPath(testInstance *testing.T) {
	_, loadError := document.LoadSnapshot("   ")
	require.ErrorIs(testInstance, loadError, document.ErrDocumentPathRequired)
}

func TestSnapshotHonorsCanceledContext(testInstance *testing.T) {
	snapshot := loadFixtureSnapshot(testInstance)
	canceledContext, cancel := context.WithCancel(context.Background())
	cancel()

	_, childrenError := snapshot.Children(canceledContext, snapshot.Roots()[0])
	require.ErrorIs(testInstance, childrenError, context.Canceled)
}
