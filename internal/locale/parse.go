package locale

import (
	"bufio"
	"strings"
)

// isLocaleKey reports whether key is one of the environment keys that carry
// locale settings: LANG, LC_ALL, or any LC_* category variable.
func isLocaleKey(key string) bool {
	return key == "LANG" || strings.HasPrefix(key, "LC_")
}

// unquote strips one matching pair of surrounding single or double quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// ParseLocaleOutput parses the output of the locale(1) command into KEY=value
// pairs, keeping only locale keys with non-blank values. Typical input:
//
//	LANG=en_US.UTF-8
//	LC_CTYPE="en_US.UTF-8"
//	LC_ALL=
func ParseLocaleOutput(out string) map[string]string {
	vars := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		key, value, ok := splitAssignment(sc.Text())
		if !ok {
			continue
		}
		vars[key] = value
	}
	return vars
}

// ParseProfile extracts locale assignments from a shell profile or locale
// defaults file. Comment lines are skipped, a leading "export" keyword is
// ignored, and only KEY=value lines for locale keys are accepted.
func ParseProfile(content string) map[string]string {
	vars := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := splitAssignment(line)
		if !ok {
			continue
		}
		vars[key] = value
	}
	return vars
}

// splitAssignment splits a KEY=value line, restricted to locale keys.
// The value has surrounding quotes stripped; blank values are rejected.
func splitAssignment(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !isLocaleKey(key) {
		return "", "", false
	}
	value = unquote(strings.TrimSpace(value))
	if value == "" {
		return "", "", false
	}
	return key, value, true
}
