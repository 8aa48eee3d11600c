package find

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubstitute(t *testing.T) {
	tests := []struct {
		in   string
		want Substitution
	}{
		{"/foo/bar", Substitution{Query: Query{Pattern: "foo", IsRegex: true, CaseSensitive: true}, Replacement: "bar"}},
		{"/foo/bar/g", Substitution{Query: Query{Pattern: "foo", IsRegex: true, CaseSensitive: true}, Replacement: "bar", Global: true}},
		{"/a.b//gilw", Substitution{Query: Query{Pattern: "a.b", WholeWord: true}, Global: true}},
		{`/a\/b/c\/d/`, Substitution{Query: Query{Pattern: "a/b", IsRegex: true, CaseSensitive: true}, Replacement: "c/d"}},
		{`/\d+/N`, Substitution{Query: Query{Pattern: `\d+`, IsRegex: true, CaseSensitive: true}, Replacement: "N"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSubstitute(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSubstituteErrors(t *testing.T) {
	for _, in := range []string{"foo/bar", "/foo", "//bar", "/a/b/x", "/a/b/c/d"} {
		_, err := ParseSubstitute(in)
		assert.Error(t, err, in)
	}
	_, err := ParseSubstitute("//bar")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
