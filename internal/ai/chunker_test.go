package ai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("w%d", i))
	}
	return strings.Join(parts, " ")
}

func TestChunkTextEmpty(t *testing.T) {
	require.Equal(t, []string{""}, ChunkText("", 250, 50))
	require.Equal(t, []string{""}, ChunkText("   \t\n  ", 250, 50))
}

func TestChunkTextShortInput(t *testing.T) {
	require.Equal(t, []string{"singleword"}, ChunkText("singleword", 250, 50))
	require.Equal(t, []string{"hello world"}, ChunkText("hello   world", 250, 50))

	// exactly chunk_size words stays one chunk
	text := words(250)
	chunks := ChunkText(text, 250, 50)
	require.Len(t, chunks, 1)
	require.Equal(t, text, chunks[0])
}

func TestChunkTextOverlapWindow(t *testing.T) {
	chunks := ChunkText(words(300), 250, 50)
	require.Len(t, chunks, 2)

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	require.Len(t, first, 250)
	require.Equal(t, "w0", first[0])
	require.Equal(t, "w249", first[249])
	// second chunk starts 200 words in, repeating the 50-word overlap
	require.Equal(t, "w200", second[0])
	require.Equal(t, "w299", second[len(second)-1])
}

func TestChunkTextNoOverlapConservesWords(t *testing.T) {
	chunks := ChunkText(words(1000), 100, 0)
	require.Len(t, chunks, 10)
	total := 0
	for _, chunk := range chunks {
		total += len(strings.Fields(chunk))
	}
	require.Equal(t, 1000, total)
}

func TestChunkTextNoTrailingDuplicate(t *testing.T) {
	// 500 words, step 200: windows at 0, 200, then remainder 400..499
	chunks := ChunkText(words(500), 250, 50)
	require.Len(t, chunks, 3)
	last := strings.Fields(chunks[len(chunks)-1])
	require.Equal(t, "w400", last[0])
	require.Equal(t, "w499", last[len(last)-1])
}

func TestChunkTextDeterministic(t *testing.T) {
	text := words(777)
	first := ChunkText(text, 250, 50)
	second := ChunkText(text, 250, 50)
	require.Equal(t, first, second)
}

func TestChunkerClampsBadParams(t *testing.T) {
	c := NewChunker(0, 0)
	chunks := c.Chunk(words(300))
	require.Equal(t, ChunkText(words(300), DefaultChunkSize, 0), chunks)

	// overlap >= size resets to zero overlap rather than looping forever
	c = NewChunker(10, 20)
	chunks = c.Chunk(words(50))
	require.Len(t, chunks, 5)
}
