package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_Lines(t *testing.T) {
	input := "hello world\n\n   \nThe quick brown fox jumps\nHello, world!\n"
	stats, err := collect(strings.NewReader(input), sources["lines"])
	require.NoError(t, err)

	assert.Len(t, stats.messages, 3)
	assert.Equal(t, 9, stats.words)
	assert.InDelta(t, 3.0, stats.Average(), 1e-9)

	longest := stats.Longest(1)
	require.Len(t, longest, 1)
	assert.Equal(t, "The quick brown fox jumps", longest[0].text)
	assert.Len(t, stats.Longest(10), 3)
}

func TestCollect_GenChat(t *testing.T) {
	input := "author#1,2021-01-01,,\"hi there, friend\"\nbroken line\n"
	stats, err := collect(strings.NewReader(input), sources["gen-chat"])
	require.NoError(t, err)

	require.Len(t, stats.messages, 1)
	assert.Equal(t, "hi there, friend", stats.messages[0].text)
	assert.Equal(t, 3, stats.words)
}

func TestCollect_LongLine(t *testing.T) {
	long := strings.Repeat("word ", 100*1024) // 500 KiB, well past bufio's default token size
	stats, err := collect(strings.NewReader("short line\n"+long+"\n"), sources["lines"])
	require.NoError(t, err)

	require.Len(t, stats.messages, 2)
	assert.Equal(t, 100*1024, stats.messages[1].words)
	assert.Equal(t, 100*1024+2, stats.words)
}

func TestStats_Print(t *testing.T) {
	var empty Stats
	assert.Zero(t, empty.Average())

	var buf bytes.Buffer
	stats := Stats{messages: []message{{"a b", 2}, {"line1\nline2", 2}}, words: 4}
	stats.Print(&buf, 1)
	assert.Equal(t, "messages: 2\nwords: 4\naverage: 2.00\n2\ta b\n", buf.String())
}
