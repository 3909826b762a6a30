package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/commentguard/internal/moderate"
)

func TestLoadComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.json")
	content := `[
		{"comment_id": "1", "username": "ann", "comment_text": "hello"},
		{"comment_id": "2", "username": "bob", "comment_text": "world"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	comments, err := LoadComments(path)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "1", comments[0].ID)
	assert.Equal(t, "ann", comments[0].Author)
	assert.Equal(t, "world", comments[1].Text)
}

func TestLoadComments_MissingFileIsFatal(t *testing.T) {
	_, err := LoadComments(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadComments_MalformedIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := LoadComments(path)
	require.Error(t, err)
}

func TestSaveAndLoadAnnotated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzed.json")
	in := []moderate.AnnotatedComment{
		{
			Comment:  moderate.Comment{ID: "1", Author: "ann", Text: "you idiot"},
			Analysis: moderate.Analysis{Verdict: &moderate.Verdict{IsOffensive: true, OffenseType: moderate.OffenseProfanity, Severity: 3, Explanation: "x"}},
		},
		{
			Comment:  moderate.Comment{ID: "2", Author: "bob", Text: ""},
			Analysis: moderate.Analysis{Error: moderate.MarkerMissingText},
		},
	}

	require.NoError(t, SaveAnnotated(path, in))

	out, err := LoadAnnotated(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Analysis.Verdict.OffenseType, out[0].Analysis.Verdict.OffenseType)
	assert.Equal(t, moderate.MarkerMissingText, out[1].Analysis.Error)
}
