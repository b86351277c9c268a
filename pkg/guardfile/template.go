package guardfile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/guard/pkg/errors"
	"github.com/arthur-debert/guard/pkg/watcher"
)

// placeholderRE matches {1} or {name} in action templates
var placeholderRE = regexp.MustCompile(`\{(\w+)\}`)

// hasPlaceholders reports whether s refers to capture groups
func hasPlaceholders(s string) bool {
	return placeholderRE.MatchString(s)
}

// expand replaces every placeholder in tmpl with the matching group of m.
// A placeholder naming a group the pattern does not have is an error.
func expand(tmpl string, m watcher.Match) (string, error) {
	var b strings.Builder
	last := 0
	for _, loc := range placeholderRE.FindAllStringSubmatchIndex(tmpl, -1) {
		b.WriteString(tmpl[last:loc[0]])
		ref := tmpl[loc[2]:loc[3]]

		var (
			value string
			ok    bool
		)
		if i, err := strconv.Atoi(ref); err == nil {
			value, ok = m.Lookup(i)
		} else {
			value, ok = m.Named(ref)
		}
		if !ok {
			return "", errors.Newf(errors.ErrActionTemplate,
				"template %q refers to group {%s} which %q does not capture", tmpl, ref, m.Path()).
				WithDetail("template", tmpl).
				WithDetail("group", ref)
		}

		b.WriteString(value)
		last = loc[1]
	}
	b.WriteString(tmpl[last:])
	return b.String(), nil
}

// Template builds the action for an `action = "..."` entry. A template
// without placeholders always derives the same path; otherwise the
// placeholders are filled from the match.
func Template(tmpl string) watcher.Action {
	if !hasPlaceholders(tmpl) {
		return watcher.NoArg(func() (interface{}, error) {
			return tmpl, nil
		}).Labeled(tmpl)
	}

	return watcher.WithMatch(func(m watcher.Match) (interface{}, error) {
		out, err := expand(tmpl, m)
		if err != nil {
			return nil, err
		}
		return out, nil
	}).Labeled(tmpl)
}

// StaticPaths builds the action for a `paths = [...]` entry
func StaticPaths(paths []string) watcher.Action {
	cp := append([]string(nil), paths...)
	return watcher.NoArg(func() (interface{}, error) {
		return cp, nil
	}).Labeled("[" + strings.Join(cp, ", ") + "]")
}
