package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue       = "true"
	toggleFalseCanonicalValue      = "false"
	toggleTypeNameConstant         = "toggle"
	toggleParseErrorTemplate       = "invalid toggle value %q"
	toggleTruePlaceholderConstant  = "<YES|no>"
	toggleFalsePlaceholderConstant = "<yes|NO>"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"on":    true,
	"1":     true,
	"y":     true,
	"false": false,
	"no":    false,
	"off":   false,
	"0":     false,
	"n":     false,
}

// AddToggleFlag registers a boolean flag accepting yes/no style values.
// A bare "--name" enables it; "--name=no" disables it.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil || len(name) == 0 {
		return
	}

	*target = defaultValue
	flagSet.Var(&toggleValue{target: target}, name, formatToggleUsage(usage, defaultValue))
	if registeredFlag := flagSet.Lookup(name); registeredFlag != nil {
		registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	}
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf("`%s` %s", placeholder, trimmedDescription)
}

type toggleValue struct {
	target *bool
}

func (value *toggleValue) Set(rawValue string) error {
	parsedValue, known := toggleLiterals[strings.ToLower(strings.TrimSpace(rawValue))]
	if !known {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	*value.target = parsedValue
	return nil
}

func (value *toggleValue) String() string {
	if value == nil || value.target == nil || !*value.target {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleValue) Type() string {
	return toggleTypeNameConstant
}
