package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-mdstrings/internal/fault"
	"github.com/goliatone/go-mdstrings/internal/runtimeconfig"
	"github.com/goliatone/go-mdstrings/internal/segment"
)

type directiveRule struct {
	class   segment.Class
	tag     string
	pattern *regexp.Regexp
}

// directiveMatcher recognises lines of the form <tag>payload</tag> for the
// configured include tags.
type directiveMatcher struct {
	rules []directiveRule
}

func newDirectiveMatcher(cfg runtimeconfig.DirectiveConfig) *directiveMatcher {
	m := &directiveMatcher{}
	m.add(segment.DocInclude, cfg.DocTag)
	m.add(segment.ItemsInclude, cfg.ItemsTag)
	m.add(segment.MarkdownInclude, cfg.IncludeTag)
	return m
}

func (m *directiveMatcher) add(class segment.Class, tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	quoted := regexp.QuoteMeta(tag)
	m.rules = append(m.rules, directiveRule{
		class:   class,
		tag:     tag,
		pattern: regexp.MustCompile(`^<` + quoted + `>(.*)</` + quoted + `>$`),
	})
}

// match returns the rule whose tags wrap line and the trimmed payload
// between them. The payload may be empty.
func (m *directiveMatcher) match(line string) (directiveRule, string, bool) {
	line = strings.TrimSpace(line)
	for _, rule := range m.rules {
		sub := rule.pattern.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		return rule, strings.TrimSpace(sub[1]), true
	}
	return directiveRule{}, "", false
}

// render encodes every non-blank line of lines as a directive. It reports
// false when any line is not a directive so the caller can fall back. A
// directive without a payload is malformed.
func (m *directiveMatcher) render(enc segment.Encoder, lines []string) (string, bool, error) {
	var b strings.Builder
	found := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rule, payload, ok := m.match(line)
		if !ok {
			return "", false, nil
		}
		if payload == "" {
			return "", false, fault.MalformedInput("empty <%s> directive", rule.tag)
		}
		found = true
		if enc.Plain() {
			b.WriteString(block(strings.TrimSpace(line)))
			continue
		}
		b.WriteString(block(enc.Container(rule.class, payload)))
	}
	return b.String(), found, nil
}

// stray reports a directive tag that shows up inside prose. Directives are
// only recognised as paragraphs of their own.
func (m *directiveMatcher) stray(prose string) error {
	for _, rule := range m.rules {
		for _, mark := range []string{"<" + rule.tag + ">", "</" + rule.tag + ">"} {
			if strings.Contains(prose, mark) {
				return fault.MalformedInput("directive %s must stand on its own line", mark)
			}
		}
	}
	return nil
}
