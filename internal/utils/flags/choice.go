package flags

import (
	"fmt"
	"strings"
)

const (
	choiceListOpenerConstant        = "<"
	choiceListCloserConstant        = ">"
	choiceListSeparatorConstant     = "|"
	bareChoiceUsageTemplateConstant = "`%s`"
	choiceUsageTemplateConstant     = "`%s` %s"
)

// FormatChoiceUsage renders a flag usage string listing the accepted values,
// with the default value capitalized. Duplicate and blank choices are dropped.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))

	displayedChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}

		normalizedChoice := strings.ToLower(trimmedChoice)
		if _, alreadySeen := seenChoices[normalizedChoice]; alreadySeen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		displayedChoices = append(displayedChoices, trimmedChoice)
	}

	choiceList := choiceListOpenerConstant + strings.Join(displayedChoices, choiceListSeparatorConstant) + choiceListCloserConstant
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(bareChoiceUsageTemplateConstant, choiceList)
	}
	return fmt.Sprintf(choiceUsageTemplateConstant, choiceList, description)
}
