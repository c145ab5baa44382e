// Package rules implements the ordered pattern lists that drive
// auto-classification: the head/subhead matcher and the ignore filter.
// Patterns compile once at set construction; a pattern that fails to
// compile is kept inert and reported through Rejected rather than
// surfacing an error at match time.
package rules

import (
	"regexp"

	"github.com/tallyfold/mis/internal/taxonomy"
)

// Source records who authored a rule. User rules are evaluated before
// built-in rules so manual corrections always win.
type Source string

const (
	SourceUser    Source = "user"
	SourceBuiltin Source = "builtin"
)

// Rule maps an account-name pattern to a head/subhead.
type Rule struct {
	Pattern string          `json:"pattern" yaml:"pattern"`
	Head    taxonomy.HeadID `json:"head" yaml:"head"`
	Subhead string          `json:"subhead" yaml:"subhead"`
	Source  Source          `json:"source" yaml:"-"`
}

// IgnoreRule excludes a line from the P&L entirely, with a reason that
// becomes the displayed subhead under the Ignore head.
type IgnoreRule struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Reason  string `json:"reason" yaml:"reason"`
}

// Rejected describes a pattern that failed to compile and is inert.
type Rejected struct {
	Pattern string `json:"pattern"`
	Err     string `json:"error"`
}

// Match is the result of a successful classification lookup.
type Match struct {
	Head    taxonomy.HeadID
	Subhead string
	Source  Source
}

// Outcome is the combined result of the ignore filter and the matcher.
type Outcome struct {
	Ignored bool
	Reason  string
	Match   Match
	Matched bool
}

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp // nil when the pattern was rejected
}

type compiledIgnore struct {
	rule IgnoreRule
	re   *regexp.Regexp
}

// Set is an immutable, compiled view over ordered rule lists.
type Set struct {
	rules    []compiledRule
	ignores  []compiledIgnore
	rejected []Rejected
}

// NewSet compiles user rules ahead of the built-in defaults plus the
// given ignore rules. Order within each list is preserved.
func NewSet(user []Rule, ignores []IgnoreRule) *Set {
	s := &Set{}
	for _, r := range user {
		r.Source = SourceUser
		s.addRule(r)
	}
	for _, r := range DefaultRules() {
		s.addRule(r)
	}
	for _, ig := range ignores {
		s.addIgnore(ig)
	}
	for _, ig := range DefaultIgnoreRules() {
		s.addIgnore(ig)
	}
	return s
}

func (s *Set) addRule(r Rule) {
	re, err := compile(r.Pattern)
	if err != nil {
		s.rejected = append(s.rejected, Rejected{Pattern: r.Pattern, Err: err.Error()})
	}
	s.rules = append(s.rules, compiledRule{rule: r, re: re})
}

func (s *Set) addIgnore(r IgnoreRule) {
	re, err := compile(r.Pattern)
	if err != nil {
		s.rejected = append(s.rejected, Rejected{Pattern: r.Pattern, Err: err.Error()})
	}
	s.ignores = append(s.ignores, compiledIgnore{rule: r, re: re})
}

func compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// CompilePattern validates a pattern the way the set would compile it.
// Used when accepting new user rules over the API.
func CompilePattern(pattern string) error {
	_, err := compile(pattern)
	return err
}

// Match returns the head/subhead of the first rule whose pattern matches
// name. Rejected patterns never match.
func (s *Set) Match(name string) (Match, bool) {
	for _, cr := range s.rules {
		if cr.re != nil && cr.re.MatchString(name) {
			return Match{Head: cr.rule.Head, Subhead: cr.rule.Subhead, Source: cr.rule.Source}, true
		}
	}
	return Match{}, false
}

// MatchIgnore returns the reason of the first ignore rule matching name.
func (s *Set) MatchIgnore(name string) (string, bool) {
	for _, ci := range s.ignores {
		if ci.re != nil && ci.re.MatchString(name) {
			return ci.rule.Reason, true
		}
	}
	return "", false
}

// Classify runs the ignore filter and then the matcher for an expense
// account and its resolved party. The ignore filter is definitive: an
// ignore match is never overridden by a classification match. The account
// name is tried before the party name.
func (s *Set) Classify(account, party string) Outcome {
	if reason, ok := s.MatchIgnore(account); ok {
		return Outcome{Ignored: true, Reason: reason}
	}
	if m, ok := s.Match(account); ok {
		return Outcome{Match: m, Matched: true}
	}
	if party != "" {
		if m, ok := s.Match(party); ok {
			return Outcome{Match: m, Matched: true}
		}
	}
	return Outcome{}
}

// Rules returns the ordered rule list (user rules first).
func (s *Set) Rules() []Rule {
	out := make([]Rule, 0, len(s.rules))
	for _, cr := range s.rules {
		out = append(out, cr.rule)
	}
	return out
}

// IgnoreRules returns the ordered ignore list.
func (s *Set) IgnoreRules() []IgnoreRule {
	out := make([]IgnoreRule, 0, len(s.ignores))
	for _, ci := range s.ignores {
		out = append(out, ci.rule)
	}
	return out
}

// Rejected lists patterns that failed to compile, for diagnostics.
func (s *Set) Rejected() []Rejected {
	out := make([]Rejected, len(s.rejected))
	copy(out, s.rejected)
	return out
}

// balanceMechanics matches rows that are balance-sheet plumbing inside an
// expense voucher (tax legs and rounding), excluded before expense
// extraction.
var balanceMechanics = regexp.MustCompile(`(?i)\b(gst|igst|cgst|sgst|tds|rounded\s*off|round\s*off)\b`)

// IsBalanceMechanics reports whether an account name is a GST/TDS/rounding
// leg rather than an expense.
func IsBalanceMechanics(name string) bool {
	return balanceMechanics.MatchString(name)
}
