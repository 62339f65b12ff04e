package links

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	emailAtSymbolConstant             = "@"
	domainSeparatorConstant           = "."
	phonePlusSymbolConstant           = "+"
	missingMailSchemeMessageConstant  = "email links must start with mailto:"
	missingPhoneSchemeMessageConstant = "phone links must start with tel:"
	probeFailedMessageConstant        = "link probe failed"
	probeCompletedMessageConstant     = "link probe completed"
	logFieldLinkConstant              = "link"
	logFieldStatusConstant            = "status"
	logFieldProbeTargetConstant       = "probe_target"
	// DefaultConcurrency bounds parallel validations in ValidateAll.
	DefaultConcurrency = 8
)

var (
	telephoneNumberPattern = regexp.MustCompile(`^\+?\d[\d\s]*$`)
	bareDigitsPattern      = regexp.MustCompile(`^\+?\d+$`)
)

// ValidatorOptions tunes a Validator.
type ValidatorOptions struct {
	// Concurrency bounds ValidateAll fan-out; values below one use DefaultConcurrency.
	Concurrency int
	// BaseURL, when set, resolves links starting with "/" before probing.
	BaseURL string
}

// Validator classifies and validates link strings.
type Validator struct {
	prober      Prober
	logger      *zap.Logger
	concurrency int
	baseURL     *url.URL
}

// NewValidator constructs a Validator. An unparsable BaseURL is ignored.
func NewValidator(prober Prober, logger *zap.Logger, options ValidatorOptions) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := options.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	validator := &Validator{prober: prober, logger: logger, concurrency: concurrency}

	trimmedBaseURL := strings.TrimSpace(options.BaseURL)
	if len(trimmedBaseURL) > 0 {
		if parsedBaseURL, parseError := url.Parse(trimmedBaseURL); parseError == nil && parsedBaseURL.IsAbs() {
			validator.baseURL = parsedBaseURL
		}
	}

	return validator
}

// Validate classifies link by scheme; only general URLs reach the network.
func (validator *Validator) Validate(executionContext context.Context, link string) ValidationResult {
	switch {
	case strings.HasPrefix(link, mailSchemePrefixConstant):
		address := strings.TrimPrefix(link, mailSchemePrefixConstant)
		return ValidationResult{Link: link, Valid: containsAll(address, emailAtSymbolConstant, domainSeparatorConstant)}
	case containsAll(link, emailAtSymbolConstant, domainSeparatorConstant):
		return ValidationResult{Link: link, Valid: false, Message: missingMailSchemeMessageConstant}
	case strings.HasPrefix(link, telephoneSchemePrefixConstant):
		number := strings.TrimPrefix(link, telephoneSchemePrefixConstant)
		return ValidationResult{Link: link, Valid: telephoneNumberPattern.MatchString(number)}
	case bareDigitsPattern.MatchString(link):
		return ValidationResult{Link: link, Valid: false, Message: missingPhoneSchemeMessageConstant}
	case containsAll(link, phonePlusSymbolConstant, domainSeparatorConstant):
		return ValidationResult{Link: link, Valid: false}
	default:
		return validator.probe(executionContext, link)
	}
}

// probe treats any obtained response as valid regardless of status code.
func (validator *Validator) probe(executionContext context.Context, link string) ValidationResult {
	probeTarget := validator.resolveTarget(link)

	probeResult, probeError := validator.prober.Probe(executionContext, probeTarget)
	if probeError != nil {
		validator.logger.Debug(
			probeFailedMessageConstant,
			zap.String(logFieldLinkConstant, link),
			zap.String(logFieldProbeTargetConstant, probeTarget),
			zap.Error(probeError),
		)
		return ValidationResult{Link: link, Status: 0, Valid: false}
	}

	validator.logger.Debug(
		probeCompletedMessageConstant,
		zap.String(logFieldLinkConstant, link),
		zap.Int(logFieldStatusConstant, probeResult.StatusCode),
	)
	return ValidationResult{Link: link, Status: probeResult.StatusCode, Valid: true}
}

func (validator *Validator) resolveTarget(link string) string {
	if validator.baseURL == nil || !strings.HasPrefix(link, pathPrefixConstant) {
		return link
	}
	reference, parseError := url.Parse(link)
	if parseError != nil {
		return link
	}
	return validator.baseURL.ResolveReference(reference).String()
}

// ValidateAll validates every link concurrently and returns one result per
// link in input order once all validations have completed.
func (validator *Validator) ValidateAll(executionContext context.Context, links []string) []ValidationResult {
	results := make([]ValidationResult, len(links))

	var validationGroup errgroup.Group
	validationGroup.SetLimit(validator.concurrency)

	for linkIndex := range links {
		linkIndex := linkIndex
		validationGroup.Go(func() error {
			results[linkIndex] = validator.Validate(executionContext, links[linkIndex])
			return nil
		})
	}

	// Validations never return an error, so Wait only acts as a barrier.
	_ = validationGroup.Wait()
	return results
}

func containsAll(candidate string, fragments ...string) bool {
	for _, fragment := range fragments {
		if !strings.Contains(candidate, fragment) {
			return false
		}
	}
	return true
}
