package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxdominios/go-kude/internal/format"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals int
		expected string
	}{
		{name: "empty input", value: "", decimals: 0, expected: "0"},
		{name: "non-numeric input", value: "abc", decimals: 0, expected: "0"},
		{name: "plain integer", value: "110000", decimals: 0, expected: "110.000"},
		{name: "small integer stays ungrouped", value: "950", decimals: 0, expected: "950"},
		{name: "millions", value: "12345678", decimals: 0, expected: "12.345.678"},
		{name: "decimal truncated to zero places", value: "10000.75", decimals: 0, expected: "10.001"},
		{name: "fixed two decimals", value: "1234567.5", decimals: 2, expected: "1.234.567,50"},
		{name: "zero value", value: "0", decimals: 0, expected: "0"},
		{name: "negative amount", value: "-4500", decimals: 0, expected: "-4.500"},
		{name: "padded decimals", value: "7", decimals: 2, expected: "7,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.Amount(tt.value, tt.decimals))
		})
	}
}

func TestCDC(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{
			name:     "standard 44-digit CDC",
			input:    "01800695631001001000000612021112917595714694",
			expected: "0180 0695 6310 0100 1000 0006 1202 1112 9175 9571 4694",
		},
		{
			name:     "groups of four until exhausted",
			input:    "01234567890123456789",
			expected: "0123 4567 8901 2345 6789",
		},
		{name: "short remainder kept as-is", input: "123456", expected: "1234 56"},
		{name: "whitespace stripped first", input: "1234 5678 90", expected: "1234 5678 90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := format.CDC(tt.input)
			assert.Equal(t, tt.expected, got)
			// No characters may be dropped or reordered.
			assert.Equal(t,
				strings.ReplaceAll(tt.input, " ", ""),
				strings.ReplaceAll(got, " ", ""))
		})
	}
}

func TestZeroPad(t *testing.T) {
	assert.Equal(t, "007", format.ZeroPad("7", 3))
	assert.Equal(t, "000", format.ZeroPad("", 3))
	assert.Equal(t, "0000001", format.ZeroPad("1", 7))
	assert.Equal(t, "1234", format.ZeroPad("1234", 3), "longer value is not truncated")
	assert.Equal(t, "001", format.ZeroPad("001", 3))
}

func TestLocality(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "parenthetical removed and title-cased", input: "ASUNCION (DISTRITO)", expected: "Asuncion"},
		{name: "multi-word", input: "CIUDAD DEL ESTE", expected: "Ciudad Del Este"},
		{name: "already mixed case", input: "San Lorenzo", expected: "San Lorenzo"},
		{name: "only a parenthetical", input: "(DISTRITO)", expected: ""},
		// The parenthetical match swallows surrounding whitespace, so the
		// neighbouring words fuse. Matches the behavior of the documents
		// already in circulation.
		{name: "inner parenthetical", input: "ALTO (ZONA) PARANA", expected: "Altoparana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.Locality(tt.input))
		})
	}
}

func TestLocality_ActivityBlock(t *testing.T) {
	// The activities block is normalized as one joined string; the code
	// lines get title-cased along with everything else.
	in := "46201 - COMERCIO AL POR MAYOR\n62010 - DESARROLLO DE SOFTWARE"
	got := format.Locality(in)
	assert.Contains(t, got, "Comercio Al Por Mayor")
	assert.Contains(t, got, "Desarrollo De Software")
	assert.Contains(t, got, "\n", "newlines survive normalization")
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, "01/10/2023 19:31:00", format.DateTime("2023-10-01T19:31:00"))
	assert.Equal(t, "05/02/2024 08:15:30", format.DateTime("2024-02-05T08:15:30-04:00"))
	assert.Equal(t, "", format.DateTime(""))
	assert.Equal(t, "", format.DateTime("not a date"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "15/08/2023", format.Date("2023-08-15"))
	assert.Equal(t, "01/10/2023", format.Date("2023-10-01T19:31:00"))
	assert.Equal(t, "", format.Date(""))
	assert.Equal(t, "", format.Date("31-12-2023"))
}

func TestIntOrZero(t *testing.T) {
	assert.Equal(t, 10, format.IntOrZero("10"))
	assert.Equal(t, 5, format.IntOrZero(" 5 "))
	assert.Equal(t, 10, format.IntOrZero("10.0"))
	assert.Equal(t, 0, format.IntOrZero(""))
	assert.Equal(t, 0, format.IntOrZero("exenta"))
}

func TestDecimalOrZero(t *testing.T) {
	assert.True(t, format.DecimalOrZero("110000").Equal(format.DecimalOrZero("110000.00")))
	assert.True(t, format.DecimalOrZero("").IsZero())
	assert.True(t, format.DecimalOrZero("n/a").IsZero())
}
