package document_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docaudit/internal/document"
)

func TestParseNodeKind(testInstance *testing.T) {
	testCases := []struct {
		discriminator string
		expectedKind  document.NodeKind
	}{
		{discriminator: "FrameNode", expectedKind: document.NodeKindFrame},
		{discriminator: "frame", expectedKind: document.NodeKindFrame},
		{discriminator: "ComponentInstanceNode", expectedKind: document.NodeKindComponentInstance},
		{discriminator: "component_instance", expectedKind: document.NodeKindComponentInstance},
		{discriminator: "component-instance", expectedKind: document.NodeKindComponentInstance},
		{discriminator: " TextNode ", expectedKind: document.NodeKindText},
		{discriminator: "SVGNode", expectedKind: document.NodeKindGeneric},
		{discriminator: "", expectedKind: document.NodeKindGeneric},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.discriminator, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedKind, document.ParseNodeKind(testCase.discriminator))
		})
	}
}

func TestNodeControlLink(testInstance *testing.T) {
	linkedNode := document.Node{Controls: map[string]any{"link": "/pricing"}}
	linkValue, linkPresent := linkedNode.ControlLink()
	require.True(testInstance, linkPresent)
	require.Equal(testInstance, "/pricing", linkValue)

	nonStringNode := document.Node{Controls: map[string]any{"link": 42}}
	_, nonStringPresent := nonStringNode.ControlLink()
	require.False(testInstance, nonStringPresent)

	_, absentPresent := document.Node{}.ControlLink()
	require.False(testInstance, absentPresent)
}

func TestNodeLabel(testInstance *testing.T) {
	require.Equal(testInstance, "Hero (n-1)", document.Node{Identifier: "n-1", Name: "Hero"}.Label())
	require.Equal(testInstance, "n-2", document.Node{Identifier: "n-2", Name: "  "}.Label())
}
