package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-editline/editline/ports"
)

type staticSource struct {
	candidates []string
	span       ports.Span
}

func (s staticSource) Candidates(string, int) []string { return s.candidates }
func (s staticSource) Span(string, int) ports.Span      { return s.span }

func TestCompleteFiltersBySubsequenceMatch(t *testing.T) {
	src := staticSource{
		candidates: []string{"status", "stash", "show", "commit"},
		span:       ports.Span{Start: 4, End: 5},
	}
	c := New(src, 0)

	out := c.Complete("git s", 5)
	require.NotEmpty(t, out)
	for _, s := range out {
		assert.Contains(t, []string{"status", "stash", "show"}, s.Value)
	}
	assert.NotContains(t, valuesOf(out), "commit")
}

func TestCompleteEmptyTokenListsAllInOrder(t *testing.T) {
	src := staticSource{
		candidates: []string{"status", "stash", "show"},
		span:       ports.Span{Start: 4, End: 4},
	}
	c := New(src, 0)

	out := c.Complete("git ", 4)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"status", "stash", "show"}, valuesOf(out))
}

func TestCompleteRespectsLimit(t *testing.T) {
	src := staticSource{
		candidates: []string{"status", "stash", "show"},
		span:       ports.Span{Start: 4, End: 4},
	}
	c := New(src, 1)

	out := c.Complete("git ", 4)
	assert.Len(t, out, 1)
}

func TestCompleteNoCandidatesReturnsNil(t *testing.T) {
	src := staticSource{span: ports.Span{Start: 0, End: 0}}
	c := New(src, 0)

	assert.Empty(t, c.Complete("", 0))
}

func TestCompleteCarriesMatchIndices(t *testing.T) {
	src := staticSource{
		candidates: []string{"status"},
		span:       ports.Span{Start: 0, End: 2},
	}
	c := New(src, 0)

	out := c.Complete("st", 2)
	require.Len(t, out, 1)
	assert.NotEmpty(t, out[0].MatchIndices)
}

func valuesOf(sg []ports.Suggestion) []string {
	out := make([]string, len(sg))
	for i, s := range sg {
		out[i] = s.Value
	}
	return out
}
