package formatter

import (
	"fmt"
	"sort"
	"strings"
)

// Formatter normalizes generated Kotlin source
type Formatter struct {
	// SortImports orders the import block the way ktlint does: everything
	// else first, then java, javax and kotlin.
	SortImports bool
}

// NewFormatter creates a new Formatter instance
func NewFormatter(sortImports bool) *Formatter {
	return &Formatter{SortImports: sortImports}
}

// Format cleans up whitespace and, if enabled, sorts imports. It fails on
// unbalanced braces, which means the template produced broken code.
func (f *Formatter) Format(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", nil
	}

	if err := checkBraces(code); err != nil {
		return "", fmt.Errorf("failed to format Kotlin code: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	result := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank || len(result) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		result = append(result, line)
	}

	if f.SortImports {
		result = sortImportBlock(result)
	}

	return strings.TrimRight(strings.Join(result, "\n"), "\n") + "\n", nil
}

// sortImportBlock sorts the first run of consecutive import lines.
func sortImportBlock(lines []string) []string {
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "import ") {
			start = i
			break
		}
	}
	if start < 0 {
		return lines
	}
	end := start
	for end < len(lines) && strings.HasPrefix(lines[end], "import ") {
		end++
	}

	var other, platform []string
	for _, line := range lines[start:end] {
		path := strings.TrimSpace(strings.TrimPrefix(line, "import "))
		if isPlatformImport(path) {
			platform = append(platform, line)
		} else {
			other = append(other, line)
		}
	}
	sort.Strings(other)
	sort.Strings(platform)

	sorted := make([]string, 0, len(lines))
	sorted = append(sorted, lines[:start]...)
	sorted = append(sorted, other...)
	sorted = append(sorted, platform...)
	sorted = append(sorted, lines[end:]...)
	return sorted
}

func isPlatformImport(path string) bool {
	for _, prefix := range []string{"java.", "javax.", "kotlin."} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// checkBraces ignores braces inside string literals and line comments.
func checkBraces(code string) error {
	depth := 0
	for n, line := range strings.Split(code, "\n") {
		inString := false
		for i := 0; i < len(line); i++ {
			c := line[i]
			switch {
			case inString && c == '\\':
				i++
			case c == '"':
				inString = !inString
			case inString:
			case c == '/' && i+1 < len(line) && line[i+1] == '/':
				i = len(line)
			case c == '{':
				depth++
			case c == '}':
				depth--
				if depth < 0 {
					return fmt.Errorf("unexpected '}' on line %d", n+1)
				}
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%d unclosed '{'", depth)
	}
	return nil
}
