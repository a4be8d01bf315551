package week

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEssay(t *testing.T) {
	got := SplitEssay("Para one.\n\nPara two.\n\n\nPara three.")
	assert.Equal(t, []string{"Para one.", "Para two.", "Para three."}, got)

	assert.Equal(t, []string{"One line\nstill one"}, SplitEssay("One line\nstill one"))
	assert.Equal(t, []string{"A", "B"}, SplitEssay("\n\n  A  \r\n  \r\nB\n\n\n"))
	assert.Empty(t, SplitEssay(""))
	assert.Empty(t, SplitEssay("\n\n \n\n"))
}

func TestFormatEssay(t *testing.T) {
	got := FormatEssay("Para one.\n\nPara two.\n\n\nPara three.")
	assert.Equal(t, "<p>Para one.</p><p>Para two.</p><p>Para three.</p>", got)
	assert.Equal(t, "", FormatEssay(""))
}

func TestMetaDescription(t *testing.T) {
	assert.Equal(t, "", MetaDescription(""))
	assert.Equal(t, "Short. Next...", MetaDescription("Short.\nNext"))

	long := strings.Repeat("é", 200)
	desc := MetaDescription(long)
	assert.Equal(t, strings.Repeat("é", DescriptionLength)+"...", desc)
	assert.NotContains(t, MetaDescription(strings.Repeat("line\n", 40)), "\n")
}
