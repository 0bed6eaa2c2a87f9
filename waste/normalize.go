package waste

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeKey prepares a table key: NFKC, trimmed, inner whitespace collapsed,
// lower-cased.
func normalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return lower(strings.Join(fields, " "))
}

func normalizeKeywordList(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(words))
	res := make([]string, 0, len(words))
	for _, w := range words {
		normed := normalizeKey(w)
		if normed == "" {
			continue
		}
		if _, ok := seen[normed]; ok {
			continue
		}
		seen[normed] = struct{}{}
		res = append(res, normed)
	}
	return res
}

func contains(label, key string) bool {
	if key == "" {
		return false
	}
	return strings.Contains(label, key)
}
