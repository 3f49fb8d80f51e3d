package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CommaWithFullName(t *testing.T) {
	text := "Full Name,Year Graduated\njane   doe,2020\nJohn Smith,2019\n"
	records, skipped := Parse(text)
	require.Len(t, records, 2)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, Record{FullName: "jane   doe", Year: 2020}, records[0])
	assert.Equal(t, Record{FullName: "John Smith", Year: 2019}, records[1])
}

func TestParse_SemicolonDelimiterWithSynonyms(t *testing.T) {
	text := "Name;Batch\nJane Doe;2020\n"
	records, skipped := Parse(text)
	require.Len(t, records, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "Jane Doe", records[0].FullName)
	assert.Equal(t, 2020, records[0].Year)
}

func TestParse_TabDelimiter(t *testing.T) {
	text := "First Name\tLast Name\tGrad Year\nJane\tDoe\t2020\n"
	records, _ := Parse(text)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Doe", records[0].FullName)
}

func TestParse_FirstLastConcatenation(t *testing.T) {
	text := "First Name,Last Name,Year\nJane,Doe,2020\n,Doe,2020\n"
	records, skipped := Parse(text)
	require.Len(t, records, 2)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "Jane Doe", records[0].FullName)
	// Missing first name still leaves a usable trimmed name.
	assert.Equal(t, "Doe", records[1].FullName)
}

func TestParse_MissingYearColumn(t *testing.T) {
	text := "Full Name,Degree\nJane Doe,BSc\nJohn Smith,BA\n"
	records, skipped := Parse(text)
	assert.Empty(t, records)
	assert.Equal(t, 0, skipped)
}

func TestParse_MissingNameColumns(t *testing.T) {
	text := "First Name,Year\nJane,2020\n"
	records, _ := Parse(text)
	assert.Empty(t, records, "first name alone without last name is unusable")
}

func TestParse_NonNumericYearRowDropped(t *testing.T) {
	text := "Full Name,Year Graduated\nJane Doe,N/A\nJohn Smith,2019\n"
	records, skipped := Parse(text)
	require.Len(t, records, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "John Smith", records[0].FullName)
}

func TestParse_ShortRowsSkipped(t *testing.T) {
	text := "Full Name,Year Graduated\nJane Doe\nJohn Smith,2019\n"
	records, skipped := Parse(text)
	require.Len(t, records, 1)
	assert.Equal(t, 1, skipped)
}

func TestParse_QuoteStripping(t *testing.T) {
	text := "Full Name,Year Graduated\n\"Jane Doe\",\"2020\"\n"
	records, _ := Parse(text)
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Doe", records[0].FullName)
	assert.Equal(t, 2020, records[0].Year)
}

func TestParse_CRLFAndBlankLines(t *testing.T) {
	text := "Full Name,Year Graduated\r\n\r\nJane Doe,2020\r\n"
	records, skipped := Parse(text)
	require.Len(t, records, 1)
	assert.Equal(t, 0, skipped)
}

func TestParse_EmptyNameRowDropped(t *testing.T) {
	text := "Full Name,Year Graduated\n   ,2020\n"
	records, skipped := Parse(text)
	assert.Empty(t, records)
	assert.Equal(t, 1, skipped)
}

func TestParse_Deterministic(t *testing.T) {
	text := "Full Name,Year Graduated\nJane Doe,2020\nJohn Smith,2019\nBad Row,N/A\n"
	a, as := Parse(text)
	b, bs := Parse(text)
	assert.Equal(t, a, b)
	assert.Equal(t, as, bs)
}

func TestParse_OrderPreserved(t *testing.T) {
	text := "Full Name,Year\nZed Last,2020\nAnn First,2020\n"
	records, _ := Parse(text)
	require.Len(t, records, 2)
	assert.Equal(t, "Zed Last", records[0].FullName)
	assert.Equal(t, "Ann First", records[1].FullName)
}
