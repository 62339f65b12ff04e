package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docaudit/cmd/cli"
	"github.com/temirov/docaudit/internal/document"
	"github.com/temirov/docaudit/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	documentHeaderMarkerConstant     = "# document.yaml"
	parentDirectoryReferenceConstant = ".."
	readmeConfigurationFileConstant  = "config.yaml"
	readmeEnvironmentPrefixConstant  = "TESTDOCAUDITREADME"
	missingHeaderMessageConstant     = "README example missing header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	expectedProbeTimeoutConstant     = 10 * time.Second
)

func extractReadmeSnippet(testInstance *testing.T, headerMarker string) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, headerMarker)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	fenceEndRelativeIndex := strings.Index(contentText[headerIndex:], yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : headerIndex+fenceEndRelativeIndex])
}

func TestReadmeConfigurationExampleLoads(testInstance *testing.T) {
	snippetContent := extractReadmeSnippet(testInstance, configHeaderMarkerConstant)

	configurationPath := filepath.Join(testInstance.TempDir(), readmeConfigurationFileConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(snippetContent), 0o600))

	loader := utils.NewConfigurationLoader("config", "yaml", readmeEnvironmentPrefixConstant, nil)
	loader.SetEmbeddedConfiguration(cli.EmbeddedDefaultConfiguration())

	var configuration cli.ApplicationConfiguration
	_, loadError := loader.LoadConfiguration(configurationPath, nil, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, string(utils.LogFormatConsole), configuration.Common.LogFormat)
	require.Equal(testInstance, expectedProbeTimeoutConstant, configuration.Audit.Links.ProbeTimeout)
	require.Equal(testInstance, "Desktop", configuration.Audit.Widths.ExemptFrameName)
	require.Equal(testInstance, "1fr", configuration.Audit.Widths.FillWidthMarker)
}

func TestReadmeDocumentExampleIndexes(testInstance *testing.T) {
	snippetContent := extractReadmeSnippet(testInstance, documentHeaderMarkerConstant)

	definition, parseError := document.ParseDefinition([]byte(snippetContent))
	require.NoError(testInstance, parseError)

	snapshot, snapshotError := document.NewSnapshot(definition)
	require.NoError(testInstance, snapshotError)

	callToAction, lookupError := snapshot.Lookup("call-to-action")
	require.NoError(testInstance, lookupError)
	require.True(testInstance, callToAction.IsComponentInstance())
	require.Len(testInstance, snapshot.Roots(), 1)
}
