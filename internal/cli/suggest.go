package cli

import (
	"strings"

	"golang.org/x/text/cases"
)

// suggest значения, содержащие введённый текст без учёта регистра
func suggest(known []string, toComplete string) []string {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(toComplete))

	matches := make([]string, 0, len(known))
	for _, value := range known {
		if strings.Contains(fold.String(value), needle) {
			matches = append(matches, value)
		}
	}
	return matches
}
