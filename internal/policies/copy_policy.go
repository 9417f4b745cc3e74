package policies

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"lms-packages/internal/types"
)

// CopyTarget is one file selected by a copy rule.
type CopyTarget struct {
	Rule        int
	Source      string
	Destination string
}

// CopyPolicy selects files from a tree according to copy rules. Patterns
// follow fnmatch semantics: '*' and '?' also match '/'.
type CopyPolicy struct {
	Rules    []types.CopyRule
	compiled []*regexp.Regexp
}

func NewCopyPolicy(rules []types.CopyRule) (CopyPolicy, error) {
	policy := CopyPolicy{Rules: rules, compiled: make([]*regexp.Regexp, len(rules))}
	for idx, rule := range rules {
		if rule.Disabled {
			continue
		}
		re, err := compileGlob(rule.Pattern)
		if err != nil {
			return CopyPolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid copy pattern %q", rule.Pattern)).
				WithCause(err)
		}
		policy.compiled[idx] = re
	}
	return policy, nil
}

// Select maps slash-separated file paths (relative to the tree root) to
// their destinations. Rules are applied in declaration order; when two
// rules produce the same destination the first one wins.
func (p CopyPolicy) Select(files []string) []CopyTarget {
	var targets []CopyTarget
	seen := map[string]struct{}{}
	for idx, rule := range p.Rules {
		re := p.compiled[idx]
		if rule.Disabled || re == nil {
			continue
		}
		src := cleanRelative(rule.Src)
		for _, file := range files {
			rel, ok := relativeTo(src, file)
			if !ok || !re.MatchString(rel) {
				continue
			}
			dest := rel
			if !rule.KeepsPath() {
				dest = path.Base(rel)
			}
			dest = path.Join(cleanRelative(rule.Dst), dest)
			if _, dup := seen[dest]; dup {
				continue
			}
			seen[dest] = struct{}{}
			targets = append(targets, CopyTarget{Rule: idx, Source: file, Destination: dest})
		}
	}
	return targets
}

// DisabledRules returns the rules that are declared but not applied.
func (p CopyPolicy) DisabledRules() []types.CopyRule {
	var disabled []types.CopyRule
	for _, rule := range p.Rules {
		if rule.Disabled {
			disabled = append(disabled, rule)
		}
	}
	return disabled
}

// ValidatePattern reports whether pattern is a usable fnmatch pattern.
func ValidatePattern(pattern string) error {
	_, err := compileGlob(pattern)
	return err
}

// Match reports whether name matches pattern with fnmatch semantics.
func Match(pattern string, name string) (bool, error) {
	re, err := compileGlob(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(name), nil
}

func relativeTo(src string, file string) (string, bool) {
	if src == "" {
		return file, true
	}
	prefix := src + "/"
	if !strings.HasPrefix(file, prefix) {
		return "", false
	}
	return strings.TrimPrefix(file, prefix), true
}

func cleanRelative(dir string) string {
	cleaned := path.Clean(strings.ReplaceAll(strings.TrimSpace(dir), "\\", "/"))
	if cleaned == "." || cleaned == "/" {
		return ""
	}
	return strings.TrimPrefix(cleaned, "./")
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	var builder strings.Builder
	builder.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			builder.WriteString(".*")
		case '?':
			builder.WriteString(".")
		case '[':
			end := classEnd(pattern, i+1)
			if end < 0 {
				builder.WriteString(`\[`)
				continue
			}
			builder.WriteString(translateClass(pattern[i+1 : end]))
			i = end
		default:
			builder.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	builder.WriteString("$")
	return regexp.Compile(builder.String())
}

// classEnd returns the index of the ']' closing a class that starts at
// start, or -1. A leading '!' and a ']' right after it belong to the class.
func classEnd(pattern string, start int) int {
	j := start
	if j < len(pattern) && pattern[j] == '!' {
		j++
	}
	if j < len(pattern) && pattern[j] == ']' {
		j++
	}
	end := strings.IndexByte(pattern[j:], ']')
	if end < 0 {
		return -1
	}
	return j + end
}

// translateClass turns the body of an fnmatch class into a regexp class.
// Only '!' negates; '^' and '\' are literal.
func translateClass(class string) string {
	var builder strings.Builder
	builder.WriteString("[")
	if strings.HasPrefix(class, "!") {
		builder.WriteString("^")
		class = class[1:]
	}
	for i := 0; i < len(class); i++ {
		switch c := class[i]; c {
		case '\\', '[', ']':
			builder.WriteByte('\\')
			builder.WriteByte(c)
		case '^':
			if i == 0 {
				builder.WriteString(`\^`)
			} else {
				builder.WriteByte(c)
			}
		default:
			builder.WriteByte(c)
		}
	}
	builder.WriteString("]")
	return builder.String()
}
