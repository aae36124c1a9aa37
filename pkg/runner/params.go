package runner

import "strings"

// bindNamed rewrites ":name" placeholders into the driver's named parameter
// syntax (prefix "@" for pgx, "$" for DuckDB). Only names present in params are
// rewritten; casts ("::"), quoted literals and quoted identifiers are left alone.
// It returns the rewritten query and the referenced names in first-use order.
func bindNamed(query string, params map[string]any, prefix string) (string, []string) {
	if len(params) == 0 {
		return query, nil
	}

	var (
		b    strings.Builder
		used []string
		seen = map[string]bool{}
	)
	b.Grow(len(query))

	for i := 0; i < len(query); {
		c := query[i]
		switch {
		case c == '\'' || c == '"':
			j := skipQuoted(query, i)
			b.WriteString(query[i:j])
			i = j
		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			b.WriteString("::")
			i += 2
		case c == ':' && i+1 < len(query) && isIdentStart(query[i+1]):
			j := i + 1
			for j < len(query) && isIdentPart(query[j]) {
				j++
			}
			name := query[i+1 : j]
			if _, ok := params[name]; !ok {
				b.WriteString(query[i:j])
				i = j
				continue
			}
			b.WriteString(prefix)
			b.WriteString(name)
			if !seen[name] {
				seen[name] = true
				used = append(used, name)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), used
}

func skipQuoted(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		if s[i] != q {
			continue
		}
		if i+1 < len(s) && s[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
