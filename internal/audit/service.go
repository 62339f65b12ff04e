package audit

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/docaudit/internal/document"
	"github.com/temirov/docaudit/internal/links"
	"github.com/temirov/docaudit/internal/styles"
	"github.com/temirov/docaudit/internal/widths"
)

const (
	logFieldRunIdentifierConstant        = "run_id"
	logFieldDocumentConstant             = "document"
	logFieldChecksConstant               = "checks"
	logFieldSelectionSizeConstant        = "selection_size"
	logFieldCollectedLinksConstant       = "collected_links"
	logFieldInvalidLinksConstant         = "invalid_links"
	logFieldStyleViolationsConstant      = "style_violations"
	logFieldModifiedNodesConstant        = "modified_nodes"
	logFieldHighlightOutputConstant      = "highlight_output"
	auditStartedMessageConstant          = "audit started"
	selectionResolvedMessageConstant     = "selection resolved"
	auditCompletedMessageConstant        = "audit completed"
	linkCheckCompletedMessageConstant    = "link check completed"
	styleCheckCompletedMessageConstant   = "style check completed"
	widthCheckCompletedMessageConstant   = "width check completed"
	highlightExportedMessageConstant     = "highlighted document written"
	loadDocumentErrorTemplateConstant    = "failed to load document: %w"
	selectNodesErrorTemplateConstant     = "failed to resolve selection: %w"
	linkCheckErrorTemplateConstant       = "link check failed: %w"
	styleCatalogErrorTemplateConstant    = "failed to read style catalog: %w"
	styleCheckErrorTemplateConstant      = "style check failed: %w"
	widthCheckErrorTemplateConstant      = "width check failed: %w"
	highlightCreateErrorTemplateConstant = "failed to create highlight output %s: %w"
	highlightWriteErrorTemplateConstant  = "failed to write highlight output %s: %w"
	unknownCheckErrorTemplateConstant    = "unknown check %q"
)

// Service runs document checks and renders their findings.
type Service struct {
	loader       DocumentLoader
	prober       links.Prober
	logger       *zap.Logger
	outputWriter io.Writer
	busy         atomic.Bool
}

// NewService constructs a Service using the provided dependencies.
func NewService(loader DocumentLoader, prober links.Prober, logger *zap.Logger, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{
		loader:       resolveLoader(loader),
		prober:       resolveProber(prober, LinksConfiguration{UserAgent: links.DefaultUserAgent}),
		logger:       logger,
		outputWriter: outputWriter,
	}
}

// Run audits the document and renders the results in the requested format.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	results, auditError := service.Audit(executionContext, options)
	if auditError != nil {
		return auditError
	}
	return Render(service.outputWriter, results, options.OutputFormat)
}

// Audit loads the document, runs the requested checks in order and returns their findings.
// Only one audit may run at a time; overlapping calls fail with ErrAuditInProgress.
func (service *Service) Audit(executionContext context.Context, options CommandOptions) (Results, error) {
	if !service.busy.CompareAndSwap(false, true) {
		return Results{}, ErrAuditInProgress
	}
	defer service.busy.Store(false)

	checks := options.Checks
	if len(checks) == 0 {
		checks = AllChecks()
	}

	runLogger := service.logger.With(zap.String(logFieldRunIdentifierConstant, uuid.NewString()))
	runLogger.Info(auditStartedMessageConstant,
		zap.String(logFieldDocumentConstant, options.DocumentPath),
		zap.Strings(logFieldChecksConstant, checkNames(checks)),
	)

	workspace, loadError := service.loader.Load(executionContext, options.DocumentPath)
	if loadError != nil {
		return Results{}, fmt.Errorf(loadDocumentErrorTemplateConstant, loadError)
	}

	selection, selectError := workspace.Select(options.Selection)
	if selectError != nil {
		return Results{}, fmt.Errorf(selectNodesErrorTemplateConstant, selectError)
	}
	runLogger.Debug(selectionResolvedMessageConstant, zap.Int(logFieldSelectionSizeConstant, len(selection)))

	var results Results
	for _, check := range checks {
		switch check {
		case CheckLinks:
			linkFindings, linkError := service.checkLinks(executionContext, runLogger, workspace, selection, options.Links)
			if linkError != nil {
				return Results{}, linkError
			}
			results.Links = linkFindings
		case CheckStyles:
			styleFindings, styleError := service.checkStyles(executionContext, runLogger, workspace, selection)
			if styleError != nil {
				return Results{}, styleError
			}
			results.Styles = styleFindings
		case CheckWidths:
			widthReport, widthError := service.checkWidths(executionContext, runLogger, workspace, selection, options.Widths)
			if widthError != nil {
				return Results{}, widthError
			}
			results.Widths = widthReport
		default:
			return Results{}, fmt.Errorf(unknownCheckErrorTemplateConstant, check)
		}
	}

	if results.Widths != nil && options.Widths.Highlight && len(options.HighlightOutputPath) > 0 {
		if exportError := service.exportHighlights(runLogger, workspace, options.HighlightOutputPath); exportError != nil {
			return Results{}, exportError
		}
	}

	runLogger.Info(auditCompletedMessageConstant)
	return results, nil
}

func (service *Service) checkLinks(executionContext context.Context, logger *zap.Logger, workspace Workspace, selection []document.Node, options LinkOptions) (*LinkFindings, error) {
	collector := links.NewCollector(workspace, logger)
	collectedLinks, collectError := collector.Collect(executionContext, selection)
	if collectError != nil {
		return nil, fmt.Errorf(linkCheckErrorTemplateConstant, collectError)
	}
	if options.Unique {
		collectedLinks = uniqueLinks(collectedLinks)
	}

	validator := links.NewValidator(service.prober, logger, links.ValidatorOptions{
		Concurrency: options.Concurrency,
		BaseURL:     options.BaseURL,
	})
	findings := &LinkFindings{Results: validator.ValidateAll(executionContext, collectedLinks)}

	logger.Info(linkCheckCompletedMessageConstant,
		zap.Int(logFieldCollectedLinksConstant, len(collectedLinks)),
		zap.Int(logFieldInvalidLinksConstant, findings.InvalidCount()),
	)
	return findings, nil
}

func (service *Service) checkStyles(executionContext context.Context, logger *zap.Logger, workspace Workspace, selection []document.Node) (*StyleFindings, error) {
	textCatalog, textError := workspace.TextStyles(executionContext)
	if textError != nil {
		return nil, fmt.Errorf(styleCatalogErrorTemplateConstant, textError)
	}
	colorCatalog, colorError := workspace.ColorStyles(executionContext)
	if colorError != nil {
		return nil, fmt.Errorf(styleCatalogErrorTemplateConstant, colorError)
	}

	auditor := styles.NewAuditor(workspace, logger)
	violations, auditError := auditor.Audit(executionContext, selection, textCatalog, colorCatalog)
	if auditError != nil {
		return nil, fmt.Errorf(styleCheckErrorTemplateConstant, auditError)
	}

	logger.Info(styleCheckCompletedMessageConstant, zap.Int(logFieldStyleViolationsConstant, len(violations)))
	return &StyleFindings{Violations: violations}, nil
}

func (service *Service) checkWidths(executionContext context.Context, logger *zap.Logger, workspace Workspace, selection []document.Node, options widths.Options) (*widths.Report, error) {
	auditor := widths.NewAuditor(workspace, logger, options)
	report, auditError := auditor.Audit(executionContext, selection)
	if auditError != nil {
		return nil, fmt.Errorf(widthCheckErrorTemplateConstant, auditError)
	}

	logger.Info(widthCheckCompletedMessageConstant, zap.Int(logFieldModifiedNodesConstant, len(workspace.ModifiedIdentifiers())))
	return &report, nil
}

func (service *Service) exportHighlights(logger *zap.Logger, workspace Workspace, outputPath string) error {
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(highlightCreateErrorTemplateConstant, outputPath, createError)
	}

	exportError := workspace.Export(outputFile)
	closeError := outputFile.Close()
	if exportError != nil {
		return fmt.Errorf(highlightWriteErrorTemplateConstant, outputPath, exportError)
	}
	if closeError != nil {
		return fmt.Errorf(highlightWriteErrorTemplateConstant, outputPath, closeError)
	}

	logger.Info(highlightExportedMessageConstant,
		zap.String(logFieldHighlightOutputConstant, outputPath),
		zap.Int(logFieldModifiedNodesConstant, len(workspace.ModifiedIdentifiers())),
	)
	return nil
}

func uniqueLinks(collectedLinks []string) []string {
	seen := make(map[string]struct{}, len(collectedLinks))
	unique := make([]string, 0, len(collectedLinks))
	for _, link := range collectedLinks {
		if _, exists := seen[link]; exists {
			continue
		}
		seen[link] = struct{}{}
		unique = append(unique, link)
	}
	return unique
}

func checkNames(checks []CheckKind) []string {
	names := make([]string, 0, len(checks))
	for _, check := range checks {
		names = append(names, strings.TrimSpace(string(check)))
	}
	return names
}
