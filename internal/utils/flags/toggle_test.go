package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const (
	toggleFlagNameConstant = "highlight"
)

func TestAddToggleFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name          string
		defaultValue  bool
		arguments     []string
		expectedValue bool
		expectError   bool
	}{
		{name: "DefaultTrueWithoutArguments", defaultValue: true, arguments: nil, expectedValue: true},
		{name: "DefaultFalseWithoutArguments", defaultValue: false, arguments: nil, expectedValue: false},
		{name: "BareFlagEnables", defaultValue: false, arguments: []string{"--highlight"}, expectedValue: true},
		{name: "NoDisables", defaultValue: true, arguments: []string{"--highlight=no"}, expectedValue: false},
		{name: "OffDisables", defaultValue: true, arguments: []string{"--highlight=OFF"}, expectedValue: false},
		{name: "YesEnables", defaultValue: false, arguments: []string{"--highlight=yes"}, expectedValue: true},
		{name: "InvalidValueRejected", defaultValue: true, arguments: []string{"--highlight=maybe"}, expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(testInstance *testing.T) {
			flagSet := pflag.NewFlagSet(testCase.name, pflag.ContinueOnError)
			var highlightEnabled bool
			AddToggleFlag(flagSet, &highlightEnabled, toggleFlagNameConstant, testCase.defaultValue, "Highlight findings.")

			parseError := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedValue, highlightEnabled)
		})
	}
}

func TestAddToggleFlagUsageShowsDefault(testInstance *testing.T) {
	flagSet := pflag.NewFlagSet("usage", pflag.ContinueOnError)
	var highlightEnabled bool
	AddToggleFlag(flagSet, &highlightEnabled, toggleFlagNameConstant, true, "Highlight findings.")

	registeredFlag := flagSet.Lookup(toggleFlagNameConstant)
	require.NotNil(testInstance, registeredFlag)
	require.Equal(testInstance, "`<YES|no>` Highlight findings.", registeredFlag.Usage)
	require.Equal(testInstance, "true", registeredFlag.DefValue)
}
