package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tableFixture = struct {
	headers []string
	rows    [][]string
}{
	headers: []string{"Bucket", "Count", "Bar"},
	rows: [][]string{
		{"<-48h", "3", "[##  ]"},
		{"0-1", "12", "[####]"},
		{"24-48", "0", "[    ]"},
	},
}

func TestASCIIBar(t *testing.T) {
	assert.Equal(t, "["+strings.Repeat(" ", 40)+"]", asciiBar(0, 40))
	assert.Equal(t, "["+strings.Repeat("#", 40)+"]", asciiBar(100, 40))

	half := asciiBar(50, 40)
	assert.Equal(t, 20, strings.Count(half, "#"))
	assert.Len(t, half, 42)

	assert.Equal(t, "[##########]", asciiBar(250, 10))
	assert.Equal(t, "[          ]", asciiBar(-5, 10))
	assert.Equal(t, "[##  ]", asciiBar(62.5, 4), "2.5 rounds half to even")
}

func TestPlainTableLayout(t *testing.T) {
	var buf bytes.Buffer
	plainTable{}.Render(&buf, []string{"Day", "Missing Count"}, [][]string{{"1", "2"}, {"10", "0"}})

	want := "Day  Missing Count\n" +
		"1    2            \n" +
		"10   0            \n"
	assert.Equal(t, want, buf.String())
}

func TestTablesPrintNoRows(t *testing.T) {
	for name, renderer := range map[string]tableRenderer{"plain": plainTable{}, "rich": richTable{}} {
		var buf bytes.Buffer
		renderer.Render(&buf, []string{"Day"}, nil)
		assert.Equal(t, noRows+"\n", buf.String(), name)
	}
}

func TestRichAndPlainRenderSameRows(t *testing.T) {
	var plain, rich bytes.Buffer
	plainTable{}.Render(&plain, tableFixture.headers, tableFixture.rows)
	richTable{}.Render(&rich, tableFixture.headers, tableFixture.rows)

	plainLines := nonEmptyLines(plain.String())
	require.Len(t, plainLines, len(tableFixture.rows)+1)
	assert.Equal(t, tableFixture.headers, strings.Fields(plainLines[0]))
	for i, row := range tableFixture.rows {
		assert.True(t, strings.HasPrefix(plainLines[i+1], row[0]), plainLines[i+1])
		assert.True(t, strings.HasSuffix(strings.TrimRight(plainLines[i+1], " "), row[2]), plainLines[i+1])
	}

	richLines := nonEmptyLines(rich.String())
	require.Len(t, richLines, len(tableFixture.rows)+2, rich.String())
	assert.Equal(t, tableFixture.headers, markdownCells(richLines[0]))
	for i, row := range tableFixture.rows {
		assert.Equal(t, row, markdownCells(richLines[i+2]))
	}
}

func TestSelectTableRenderer(t *testing.T) {
	assert.IsType(t, richTable{}, selectTableRenderer(tableStyleRich, false))
	assert.IsType(t, plainTable{}, selectTableRenderer(tableStylePlain, true))
	assert.IsType(t, richTable{}, selectTableRenderer(tableStyleAuto, true))
	assert.IsType(t, plainTable{}, selectTableRenderer(tableStyleAuto, false))
}

func TestExamples(t *testing.T) {
	names := []string{"a", "b", "c"}
	assert.Equal(t, "a, b, c", examples(names, 3))
	assert.Equal(t, "a, b...", examples(names, 2))
	assert.Equal(t, "", examples(nil, 10))
}

func nonEmptyLines(value string) []string {
	lines := []string{}
	for _, line := range strings.Split(value, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func markdownCells(line string) []string {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 2 {
		return nil
	}
	cells := make([]string, 0, len(parts)-2)
	for _, part := range parts[1 : len(parts)-1] {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}
