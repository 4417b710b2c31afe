package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "info",
			choices:        []string{"info", "debug", "warn", "error"},
			description:    "Minimum severity of reported events.",
			expectedOutput: "`<INFO|debug|warn|error>` Minimum severity of reported events.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "structured",
			choices:        []string{"console", "structured"},
			description:    "Log output encoding.",
			expectedOutput: "`<console|STRUCTURED>` Log output encoding.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "console",
			choices:        []string{"console", "structured"},
			description:    "",
			expectedOutput: "`<CONSOLE|structured>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "debug",
			choices:        []string{"debug", "debug", "info", "info"},
			description:    "Select between options.",
			expectedOutput: "`<DEBUG|info>` Select between options.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "console",
			choices:        []string{" console ", " structured "},
			description:    "Pick an encoding.",
			expectedOutput: "`<CONSOLE|structured>` Pick an encoding.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}
