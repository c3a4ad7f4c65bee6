package locations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, input string) [][]string {
	s, err := NewScanner(strings.NewReader(input))
	require.NoError(t, err)
	var rows [][]string
	for s.Scan() {
		rows = append(rows, s.Row())
	}
	require.NoError(t, s.Err())
	return rows
}

func TestScanner_SplitsTabs(t *testing.T) {
	rows := scanAll(t, "Inception (2010)\t\tParis, France\t(bridge)\nUp (2009)\tFoo\n")
	assert.Equal(t, [][]string{
		{"Inception (2010)", "", "Paris, France", "(bridge)"},
		{"Up (2009)", "Foo"},
	}, rows)
}

func TestScanner_StripsCRLFAndBOM(t *testing.T) {
	rows := scanAll(t, "\xef\xbb\xbfA (2001)\t\tRome\t\r\nB (2002)\t\tOslo\t")
	assert.Equal(t, [][]string{
		{"A (2001)", "", "Rome", ""},
		{"B (2002)", "", "Oslo", ""},
	}, rows)
}

func TestScanner_Empty(t *testing.T) {
	assert.Empty(t, scanAll(t, ""))
}

func TestScanner_SinglePass(t *testing.T) {
	s, err := NewScanner(strings.NewReader("a\tb\tc\n"))
	require.NoError(t, err)
	assert.True(t, s.Scan())
	assert.False(t, s.Scan())
	assert.False(t, s.Scan())
	assert.Nil(t, s.Row())
	assert.NoError(t, s.Err())
}

func TestScanner_LongLines(t *testing.T) {
	title := "Long (1999) " + strings.Repeat("x", 3*1024*1024)
	rows := scanAll(t, title+"\t\tLisbon\t\nShort (1999)\t\tPorto\t\n")
	require.Len(t, rows, 2)
	assert.Equal(t, title, rows[0][0])
	assert.Equal(t, []string{"Short (1999)", "", "Porto", ""}, rows[1])
}

func TestScanner_BlankLines(t *testing.T) {
	assert.Equal(t, [][]string{{""}, {"a", "b"}}, scanAll(t, "\na\tb\n"))
}
