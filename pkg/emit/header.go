package emit

import (
	"fmt"
	"strings"
)

const bannerRule = "****************************************************"

// banner renders the "do not edit" block placed at the top of every
// generated file, using the target's line comment prefix.
func banner(comment, project, file, generator string) string {
	lines := []string{
		bannerRule,
		project,
		"Status",
		fmt.Sprintf("'%s'", file),
		"Author: Auto-Generated",
		"Description:",
		"     Status codes for error handling.",
		"     Do not edit manually. Use",
		fmt.Sprintf("     '%s' to add", generator),
		"     new status codes.",
		bannerRule,
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(comment)
		b.WriteString(" ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
