package audit

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/docaudit/internal/links"
	"github.com/temirov/docaudit/internal/utils/flags"
	pathutils "github.com/temirov/docaudit/internal/utils/path"
)

const (
	commandNameConstant                    = "audit"
	commandShortDescriptionConstant        = "Audit a design document for link, style and width defects"
	commandLongDescriptionConstant         = "audit loads a document export and runs the link, style and width checks against the selected nodes."
	linksCommandNameConstant               = "links"
	linksCommandShortConstant              = "Collect and validate navigation links"
	stylesCommandNameConstant              = "styles"
	stylesCommandShortConstant             = "Check the style catalog and style references"
	widthsCommandNameConstant              = "widths"
	widthsCommandShortConstant             = "Check frame width modes and max widths"
	allCommandNameConstant                 = "all"
	allCommandShortConstant                = "Run the link, style and width checks"
	documentFlagNameConstant               = "document"
	documentFlagDescriptionConstant        = "Path to the document export (YAML or JSON)"
	selectFlagNameConstant                 = "select"
	selectFlagDescriptionConstant          = "Node identifier to audit (repeatable; defaults to every top-level node)"
	formatFlagNameConstant                 = "format"
	formatFlagDescriptionConstant          = "Output format"
	concurrencyFlagNameConstant            = "concurrency"
	concurrencyFlagDescriptionConstant     = "Maximum number of links validated in parallel"
	baseURLFlagNameConstant                = "base-url"
	baseURLFlagDescriptionConstant         = "Base URL used to resolve links starting with /"
	uniqueFlagNameConstant                 = "unique"
	uniqueFlagDescriptionConstant          = "Validate each distinct link once"
	highlightFlagNameConstant              = "highlight"
	highlightFlagDescriptionConstant       = "Mark offending frames in the document"
	highlightOutputFlagNameConstant        = "highlight-output"
	highlightOutputFlagDescriptionConstant = "Write the highlighted document to this path"
	toggleEnabledFlagValueConstant         = "true"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Loader                DocumentLoader
	Prober                links.Prober
	PathResolver          *pathutils.Resolver
}

// Build constructs the audit command with its links, styles, widths and all subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	command.PersistentFlags().String(documentFlagNameConstant, "", documentFlagDescriptionConstant)
	command.PersistentFlags().StringSlice(selectFlagNameConstant, nil, selectFlagDescriptionConstant)
	command.PersistentFlags().String(formatFlagNameConstant, string(OutputFormatText), flags.FormatChoiceUsage(string(OutputFormatText), OutputFormatChoices(), formatFlagDescriptionConstant))

	command.AddCommand(
		builder.buildCheckCommand(linksCommandNameConstant, linksCommandShortConstant, []CheckKind{CheckLinks}),
		builder.buildCheckCommand(stylesCommandNameConstant, stylesCommandShortConstant, []CheckKind{CheckStyles}),
		builder.buildCheckCommand(widthsCommandNameConstant, widthsCommandShortConstant, []CheckKind{CheckWidths}),
		builder.buildCheckCommand(allCommandNameConstant, allCommandShortConstant, AllChecks()),
	)

	return command, nil
}

func (builder *CommandBuilder) buildCheckCommand(name string, shortDescription string, checks []CheckKind) *cobra.Command {
	command := &cobra.Command{
		Use:   name,
		Short: shortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, checks)
		},
	}

	for _, check := range checks {
		switch check {
		case CheckLinks:
			command.Flags().Int(concurrencyFlagNameConstant, links.DefaultConcurrency, concurrencyFlagDescriptionConstant)
			command.Flags().String(baseURLFlagNameConstant, "", baseURLFlagDescriptionConstant)
			command.Flags().Bool(uniqueFlagNameConstant, false, uniqueFlagDescriptionConstant)
		case CheckWidths:
			var highlightEnabled bool
			flags.AddToggleFlag(command.Flags(), &highlightEnabled, highlightFlagNameConstant, true, highlightFlagDescriptionConstant)
			command.Flags().String(highlightOutputFlagNameConstant, "", highlightOutputFlagDescriptionConstant)
		}
	}

	return command
}

func (builder *CommandBuilder) run(command *cobra.Command, checks []CheckKind) error {
	configuration := builder.resolveConfiguration(command)

	outputFormat, formatError := ParseOutputFormat(configuration.OutputFormat)
	if formatError != nil {
		return formatError
	}

	options := CommandOptions{
		DocumentPath: configuration.Document,
		Selection:    configuration.Selection,
		Checks:       checks,
		OutputFormat: outputFormat,
		Links: LinkOptions{
			Concurrency: configuration.Links.Concurrency,
			BaseURL:     configuration.Links.BaseURL,
			Unique:      configuration.Links.Unique,
		},
		Widths:              configuration.Widths.widthOptions(),
		HighlightOutputPath: configuration.Widths.HighlightOutput,
	}

	service := NewService(builder.Loader, resolveProber(builder.Prober, configuration.Links), builder.resolveLogger(), command.OutOrStdout())
	return service.Run(command.Context(), options)
}

// resolveConfiguration overlays explicitly set flags on the provided configuration.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagSet := command.Flags()
	if flagSet.Changed(documentFlagNameConstant) {
		configuration.Document, _ = flagSet.GetString(documentFlagNameConstant)
	}
	if flagSet.Changed(selectFlagNameConstant) {
		configuration.Selection, _ = flagSet.GetStringSlice(selectFlagNameConstant)
	}
	if flagSet.Changed(formatFlagNameConstant) {
		configuration.OutputFormat, _ = flagSet.GetString(formatFlagNameConstant)
	}
	if flagSet.Changed(concurrencyFlagNameConstant) {
		configuration.Links.Concurrency, _ = flagSet.GetInt(concurrencyFlagNameConstant)
	}
	if flagSet.Changed(baseURLFlagNameConstant) {
		configuration.Links.BaseURL, _ = flagSet.GetString(baseURLFlagNameConstant)
	}
	if flagSet.Changed(uniqueFlagNameConstant) {
		configuration.Links.Unique, _ = flagSet.GetBool(uniqueFlagNameConstant)
	}
	if flagSet.Changed(highlightFlagNameConstant) {
		configuration.Widths.Highlight = flagSet.Lookup(highlightFlagNameConstant).Value.String() == toggleEnabledFlagValueConstant
	}
	if flagSet.Changed(highlightOutputFlagNameConstant) {
		configuration.Widths.HighlightOutput, _ = flagSet.GetString(highlightOutputFlagNameConstant)
	}

	resolver := builder.PathResolver
	if resolver == nil {
		resolver = pathutils.NewResolver()
	}
	return configuration.sanitize(resolver)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
