package document_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docaudit/internal/document"
)

func TestDecodeFrameSizing(testInstance *testing.T) {
	testCases := []struct {
		name                string
		attributes          document.Attributes
		expectedWidth       string
		expectedHasMaxWidth bool
	}{
		{
			name:                "fill_with_max_width",
			attributes:          document.Attributes{"width": "1fr", "maxWidth": "1200px"},
			expectedWidth:       "1fr",
			expectedHasMaxWidth: true,
		},
		{
			name:                "numeric_max_width",
			attributes:          document.Attributes{"width": " fit-content ", "maxWidth": 960},
			expectedWidth:       "fit-content",
			expectedHasMaxWidth: true,
		},
		{
			name:                "null_max_width",
			attributes:          document.Attributes{"width": "320px", "maxWidth": nil},
			expectedWidth:       "320px",
			expectedHasMaxWidth: false,
		},
		{
			name:                "blank_max_width",
			attributes:          document.Attributes{"width": "1fr", "maxWidth": "  "},
			expectedWidth:       "1fr",
			expectedHasMaxWidth: false,
		},
		{
			name:                "no_attributes",
			attributes:          nil,
			expectedWidth:       "",
			expectedHasMaxWidth: false,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			sizing, decodeError := document.DecodeFrameSizing(testCase.attributes)
			require.NoError(subTest, decodeError)
			require.Equal(subTest, testCase.expectedWidth, sizing.Width)
			require.Equal(subTest, testCase.expectedHasMaxWidth, sizing.HasMaxWidth())
		})
	}
}

func TestDecodeStyleReferences(testInstance *testing.T) {
	references, decodeError := document.DecodeStyleReferences(document.Attributes{
		"textStyle": "ts-body",
		"width":     "1fr",
	})
	require.NoError(testInstance, decodeError)
	require.NotNil(testInstance, references.TextStyle)
	require.Equal(testInstance, "ts-body", *references.TextStyle)
	require.Nil(testInstance, references.ColorStyle)
}

func TestAttributesCloneIsIndependent(testInstance *testing.T) {
	original := document.Attributes{"width": "1fr"}
	cloned := original.Clone()
	cloned["width"] = "fit-content"
	require.Equal(testInstance, "1fr", original["width"])
	require.Empty(testInstance, document.Attributes(nil).Clone())
}
