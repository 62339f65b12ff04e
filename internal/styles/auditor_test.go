package styles_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/docaudit/internal/document"
	"github.com/temirov/docaudit/internal/styles"
)

type attributeReaderStub struct {
	attributesByIdentifier map[string]document.Attributes
	failingIdentifier      string
}

func (stub *attributeReaderStub) Attributes(executionContext context.Context, node document.Node) (document.Attributes, error) {
	if node.Identifier == stub.failingIdentifier {
		return nil, errors.New("attribute fetch failed")
	}
	return stub.attributesByIdentifier[node.Identifier].Clone(), nil
}

var (
	completeTextCatalog = []document.TextStyle{
		{Identifier: "ts-body", Name: "Body", Font: "Inter", FontSize: "16px", Color: "#111111"},
	}
	completeColorCatalog = []document.ColorStyle{
		{Identifier: "cs-primary", Name: "Primary", Light: "#0055ff", Dark: "#88aaff"},
	}
)

func TestAuditorReportsIncompleteTextStyle(testInstance *testing.T) {
	auditor := styles.NewAuditor(&attributeReaderStub{}, nil)
	textCatalog := []document.TextStyle{
		{Identifier: "ts-caption", Name: "Caption", FontSize: "0px"},
	}

	violations, auditError := auditor.Audit(context.Background(), nil, textCatalog, nil)
	require.NoError(testInstance, auditError)
	require.Equal(testInstance, []string{
		`Text style "Caption" is missing a font`,
		`Text style "Caption" is missing a color`,
		`Text style "Caption" has a font size of zero`,
	}, violations)
}

func TestAuditorReportsIncompleteColorStyle(testInstance *testing.T) {
	auditor := styles.NewAuditor(&attributeReaderStub{}, nil)
	colorCatalog := []document.ColorStyle{
		{Identifier: "cs-accent", Light: "#ff0000"},
	}

	violations, auditError := auditor.Audit(context.Background(), nil, nil, colorCatalog)
	require.NoError(testInstance, auditError)
	require.Equal(testInstance, []string{
		`Color style "cs-accent" is missing a name`,
		`Color style "cs-accent" is missing a dark value`,
	}, violations)
}

func TestAuditorReportsUnknownReferences(testInstance *testing.T) {
	reader := &attributeReaderStub{attributesByIdentifier: map[string]document.Attributes{
		"title":    {"textStyle": "ts-body", "colorStyle": "cs-primary"},
		"subtitle": {"textStyle": "ts-missing"},
		"badge":    {"colorStyle": "cs-missing"},
		"divider":  {"width": "1fr"},
	}}
	auditor := styles.NewAuditor(reader, nil)
	selection := []document.Node{
		{Identifier: "title", Name: "Title"},
		{Identifier: "subtitle", Name: "Subtitle"},
		{Identifier: "badge"},
		{Identifier: "divider"},
		{Identifier: "unknown-to-host"},
	}

	violations, auditError := auditor.Audit(context.Background(), selection, completeTextCatalog, completeColorCatalog)
	require.NoError(testInstance, auditError)
	require.Equal(testInstance, []string{
		`Node Subtitle (subtitle) uses text style "ts-missing" which is not in the text style catalog`,
		`Node badge uses color style "cs-missing" which is not in the color style catalog`,
	}, violations)
}

func TestAuditorContinuesPastUnreadableReference(testInstance *testing.T) {
	reader := &attributeReaderStub{attributesByIdentifier: map[string]document.Attributes{
		"logo":  {"textStyle": map[string]any{"id": "ts-body"}},
		"badge": {"colorStyle": "cs-missing"},
	}}
	observedCore, observedLogs := observer.New(zap.WarnLevel)
	auditor := styles.NewAuditor(reader, zap.New(observedCore))
	selection := []document.Node{{Identifier: "logo", Name: "Logo"}, {Identifier: "badge"}}

	violations, auditError := auditor.Audit(context.Background(), selection, completeTextCatalog, completeColorCatalog)
	require.NoError(testInstance, auditError)
	require.Equal(testInstance, []string{
		"Node Logo (logo) has an unreadable style reference",
		`Node badge uses color style "cs-missing" which is not in the color style catalog`,
	}, violations)

	warningEntries := observedLogs.FilterField(zap.String("node_id", "logo")).All()
	require.Len(testInstance, warningEntries, 1)
	require.Equal(testInstance, zap.WarnLevel, warningEntries[0].Level)
}

func TestAuditorOrdersCompletenessBeforeUsage(testInstance *testing.T) {
	reader := &attributeReaderStub{attributesByIdentifier: map[string]document.Attributes{
		"title": {"textStyle": "ts-missing"},
	}}
	auditor := styles.NewAuditor(reader, nil)
	textCatalog := []document.TextStyle{
		{Identifier: "ts-body", Font: "Inter", FontSize: "16px", Color: "#111111"},
	}

	violations, auditError := auditor.Audit(context.Background(), []document.Node{{Identifier: "title"}}, textCatalog, nil)
	require.NoError(testInstance, auditError)
	require.Len(testInstance, violations, 2)
	require.Equal(testInstance, `Text style "ts-body" is missing a name`, violations[0])
	require.Contains(testInstance, violations[1], "ts-missing")
}

func TestAuditorIsIdempotent(testInstance *testing.T) {
	reader := &attributeReaderStub{attributesByIdentifier: map[string]document.Attributes{
		"title": {"textStyle": "ts-missing", "colorStyle": "cs-missing"},
	}}
	auditor := styles.NewAuditor(reader, nil)
	selection := []document.Node{{Identifier: "title"}}
	textCatalog := []document.TextStyle{{Identifier: "ts-empty"}}

	firstRun, firstError := auditor.Audit(context.Background(), selection, textCatalog, completeColorCatalog)
	require.NoError(testInstance, firstError)
	secondRun, secondError := auditor.Audit(context.Background(), selection, textCatalog, completeColorCatalog)
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, firstRun, secondRun)
}

func TestAuditorPropagatesAttributeFailure(testInstance *testing.T) {
	auditor := styles.NewAuditor(&attributeReaderStub{failingIdentifier: "title"}, nil)

	violations, auditError := auditor.Audit(context.Background(), []document.Node{{Identifier: "title"}}, completeTextCatalog, completeColorCatalog)
	require.Error(testInstance, auditError)
	require.Nil(testInstance, violations)
}

func TestIsZeroSizeToken(testInstance *testing.T) {
	testCases := []struct {
		token        string
		expectedZero bool
	}{
		{token: "0px", expectedZero: true},
		{token: "0", expectedZero: true},
		{token: "0.0rem", expectedZero: true},
		{token: "", expectedZero: true},
		{token: "px", expectedZero: true},
		{token: "-2px", expectedZero: true},
		{token: "16px", expectedZero: false},
		{token: " 1.5em ", expectedZero: false},
		{token: "12", expectedZero: false},
		{token: "100%", expectedZero: false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.token, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedZero, styles.IsZeroSizeToken(testCase.token))
		})
	}
}
