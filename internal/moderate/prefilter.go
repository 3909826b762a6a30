package moderate

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultVocabulary is the built-in list of disallowed terms, used when
// no vocabulary file is configured.
var DefaultVocabulary = []string{
	"damn",
	"dammit",
	"crap",
	"piss off",
	"screw you",
	"bastard",
	"jackass",
	"dumbass",
	"moron",
	"idiot",
	"imbecile",
	"scumbag",
	"shut up",
	"go to hell",
}

// Prefilter checks comment text against a static vocabulary of disallowed
// terms. Matching is case-insensitive substring matching, deterministic,
// and performs no I/O. The vocabulary is loaded once at startup and never
// mutated during a run.
type Prefilter struct {
	terms []string
}

// NewPrefilter builds a Prefilter from the given terms. An empty
// vocabulary is a configuration fault: it must be caught here, before
// any comment is processed, not at match time.
func NewPrefilter(terms []string) (*Prefilter, error) {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	if len(lowered) == 0 {
		return nil, fmt.Errorf("pre-filter vocabulary is empty")
	}
	return &Prefilter{terms: lowered}, nil
}

// Match reports whether text contains a disallowed term.
func (p *Prefilter) Match(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range p.terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// Len returns the vocabulary size.
func (p *Prefilter) Len() int { return len(p.terms) }

// LoadVocabulary reads a vocabulary file: one term per line, blank lines
// and #-comments ignored.
func LoadVocabulary(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	return terms, nil
}
