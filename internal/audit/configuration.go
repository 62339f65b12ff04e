package audit

import (
	"strings"
	"time"

	"github.com/temirov/docaudit/internal/links"
	pathutils "github.com/temirov/docaudit/internal/utils/path"
	"github.com/temirov/docaudit/internal/widths"
)

const (
	configurationKeySeparatorConstant    = "."
	documentKeyConstant                  = "document"
	selectionKeyConstant                 = "select"
	outputFormatKeyConstant              = "format"
	linksConcurrencyKeyConstant          = "links.concurrency"
	linksProbeTimeoutKeyConstant         = "links.probe_timeout"
	linksUserAgentKeyConstant            = "links.user_agent"
	linksBaseURLKeyConstant              = "links.base_url"
	linksUniqueKeyConstant               = "links.unique"
	widthsExemptFrameKeyConstant         = "widths.exempt_frame_name"
	widthsFillMarkerKeyConstant          = "widths.fill_width_marker"
	widthsFitMarkerKeyConstant           = "widths.fit_width_marker"
	widthsHighlightKeyConstant           = "widths.highlight"
	widthsHighlightAttributeKeyConstant  = "widths.highlight_attribute"
	widthsMissingMaxAttributeKeyConstant = "widths.missing_max_width_highlight_attribute"
	widthsInvalidColorKeyConstant        = "widths.invalid_width_color"
	widthsMissingMaxColorKeyConstant     = "widths.missing_max_width_color"
	widthsHighlightOutputKeyConstant     = "widths.highlight_output"
)

// LinksConfiguration tunes link collection and validation.
type LinksConfiguration struct {
	Concurrency  int           `mapstructure:"concurrency"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	BaseURL      string        `mapstructure:"base_url"`
	Unique       bool          `mapstructure:"unique"`
}

// WidthsConfiguration tunes the frame sizing rules and highlight export.
type WidthsConfiguration struct {
	ExemptFrameName          string `mapstructure:"exempt_frame_name"`
	FillWidthMarker          string `mapstructure:"fill_width_marker"`
	FitWidthMarker           string `mapstructure:"fit_width_marker"`
	Highlight                bool   `mapstructure:"highlight"`
	HighlightAttribute       string `mapstructure:"highlight_attribute"`
	MissingMaxWidthAttribute string `mapstructure:"missing_max_width_highlight_attribute"`
	InvalidWidthColor        string `mapstructure:"invalid_width_color"`
	MissingMaxWidthColor     string `mapstructure:"missing_max_width_color"`
	HighlightOutput          string `mapstructure:"highlight_output"`
}

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Document     string              `mapstructure:"document"`
	Selection    []string            `mapstructure:"select"`
	OutputFormat string              `mapstructure:"format"`
	Links        LinksConfiguration  `mapstructure:"links"`
	Widths       WidthsConfiguration `mapstructure:"widths"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	widthDefaults := widths.DefaultOptions()
	return CommandConfiguration{
		OutputFormat: string(OutputFormatText),
		Links: LinksConfiguration{
			Concurrency: links.DefaultConcurrency,
			UserAgent:   links.DefaultUserAgent,
		},
		Widths: WidthsConfiguration{
			ExemptFrameName:          widthDefaults.ExemptFrameName,
			FillWidthMarker:          widthDefaults.FillWidthMarker,
			FitWidthMarker:           widthDefaults.FitWidthMarker,
			Highlight:                widthDefaults.Highlight,
			HighlightAttribute:       widthDefaults.HighlightAttribute,
			MissingMaxWidthAttribute: widthDefaults.MissingMaxWidthAttribute,
			InvalidWidthColor:        widthDefaults.InvalidWidthColor,
			MissingMaxWidthColor:     widthDefaults.MissingMaxWidthColor,
		},
	}
}

// DefaultConfigurationValues flattens DefaultCommandConfiguration into Viper keys nested under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	flattened := map[string]any{
		documentKeyConstant:                  defaults.Document,
		selectionKeyConstant:                 []string{},
		outputFormatKeyConstant:              defaults.OutputFormat,
		linksConcurrencyKeyConstant:          defaults.Links.Concurrency,
		linksProbeTimeoutKeyConstant:         defaults.Links.ProbeTimeout,
		linksUserAgentKeyConstant:            defaults.Links.UserAgent,
		linksBaseURLKeyConstant:              defaults.Links.BaseURL,
		linksUniqueKeyConstant:               defaults.Links.Unique,
		widthsExemptFrameKeyConstant:         defaults.Widths.ExemptFrameName,
		widthsFillMarkerKeyConstant:          defaults.Widths.FillWidthMarker,
		widthsFitMarkerKeyConstant:           defaults.Widths.FitWidthMarker,
		widthsHighlightKeyConstant:           defaults.Widths.Highlight,
		widthsHighlightAttributeKeyConstant:  defaults.Widths.HighlightAttribute,
		widthsMissingMaxAttributeKeyConstant: defaults.Widths.MissingMaxWidthAttribute,
		widthsInvalidColorKeyConstant:        defaults.Widths.InvalidWidthColor,
		widthsMissingMaxColorKeyConstant:     defaults.Widths.MissingMaxWidthColor,
		widthsHighlightOutputKeyConstant:     defaults.Widths.HighlightOutput,
	}

	trimmedRootKey := strings.TrimSpace(rootKey)
	if len(trimmedRootKey) == 0 {
		return flattened
	}

	nested := make(map[string]any, len(flattened))
	for key, value := range flattened {
		nested[trimmedRootKey+configurationKeySeparatorConstant+key] = value
	}
	return nested
}

// sanitize trims whitespace, resolves file paths and drops blank selection entries.
func (configuration CommandConfiguration) sanitize(resolver *pathutils.Resolver) CommandConfiguration {
	sanitized := configuration

	sanitized.Document = resolver.Resolve(configuration.Document)
	sanitized.Selection = sanitizeIdentifiers(configuration.Selection)
	sanitized.OutputFormat = strings.ToLower(strings.TrimSpace(configuration.OutputFormat))
	sanitized.Links.UserAgent = strings.TrimSpace(configuration.Links.UserAgent)
	sanitized.Links.BaseURL = strings.TrimSpace(configuration.Links.BaseURL)
	sanitized.Widths.ExemptFrameName = strings.TrimSpace(configuration.Widths.ExemptFrameName)
	sanitized.Widths.HighlightOutput = resolver.Resolve(configuration.Widths.HighlightOutput)

	if sanitized.Links.Concurrency < 1 {
		sanitized.Links.Concurrency = links.DefaultConcurrency
	}
	if len(sanitized.Links.UserAgent) == 0 {
		sanitized.Links.UserAgent = links.DefaultUserAgent
	}

	return sanitized
}

// widthOptions converts the configuration into width auditor options.
func (configuration WidthsConfiguration) widthOptions() widths.Options {
	return widths.Options{
		ExemptFrameName:          configuration.ExemptFrameName,
		FillWidthMarker:          configuration.FillWidthMarker,
		FitWidthMarker:           configuration.FitWidthMarker,
		Highlight:                configuration.Highlight,
		HighlightAttribute:       configuration.HighlightAttribute,
		MissingMaxWidthAttribute: configuration.MissingMaxWidthAttribute,
		InvalidWidthColor:        configuration.InvalidWidthColor,
		MissingMaxWidthColor:     configuration.MissingMaxWidthColor,
	}
}

func sanitizeIdentifiers(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for index := range raw {
		trimmed := strings.TrimSpace(raw[index])
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
