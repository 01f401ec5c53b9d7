// Package fuzzy implements a ports.Completer that ranks a candidate list by
// subsequence fuzzy match, the way the teacher's interactive fuzzy finder
// ranks git subcommands — except here the match/score/sort work is delegated
// to github.com/sahilm/fuzzy rather than hand-rolled, and the result carries
// the matcher's MatchIndices (the painter does not render them).
package fuzzy

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/go-editline/editline/ports"
)

// Source supplies the full candidate list and, given a completion position,
// the token span that should be replaced with the chosen candidate.
type Source interface {
	// Candidates returns every completion candidate for the current buffer
	// and cursor position. Filtering against the in-progress token is done
	// by the fuzzy matcher, not by Candidates.
	Candidates(line string, pos int) []string
	// Span returns the byte range of the token being completed at pos, so
	// the caller knows what text a selected candidate replaces.
	Span(line string, pos int) ports.Span
}

// Completer adapts a Source into a ports.Completer via fuzzy subsequence
// matching and ranking.
type Completer struct {
	src   Source
	limit int
}

// New returns a Completer over src. limit caps the number of suggestions
// returned per call; zero means unlimited.
func New(src Source, limit int) *Completer {
	return &Completer{src: src, limit: limit}
}

// Complete implements ports.Completer.
func (c *Completer) Complete(line string, pos int) []ports.Suggestion {
	span := c.src.Span(line, pos)
	token := line[span.Start:span.End]
	candidates := c.src.Candidates(line, pos)
	if len(candidates) == 0 {
		return nil
	}

	var matches fuzzy.Matches
	if token == "" {
		matches = identityMatches(candidates)
	} else {
		matches = fuzzy.Find(token, candidates)
	}

	if c.limit > 0 && len(matches) > c.limit {
		matches = matches[:c.limit]
	}

	out := make([]ports.Suggestion, len(matches))
	for i, m := range matches {
		out[i] = ports.Suggestion{
			Value:            m.Str,
			Span:             span,
			AppendWhitespace: !strings.Contains(m.Str, " "),
			MatchIndices:     m.MatchedIndexes,
		}
	}
	return out
}

// identityMatches treats every candidate as matching an empty token, in
// input order, so an empty in-progress token still lists every candidate.
func identityMatches(candidates []string) fuzzy.Matches {
	out := make(fuzzy.Matches, len(candidates))
	for i, s := range candidates {
		out[i] = fuzzy.Match{Str: s, Index: i}
	}
	return out
}
