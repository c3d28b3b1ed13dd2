package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncatePrompt(t *testing.T) {
	require.Equal(t, "hello", truncatePrompt("hello", 0))
	require.Equal(t, "hello", truncatePrompt("hello", -1))
	require.Equal(t, "hello", truncatePrompt("hello", 5))
	require.Equal(t, "hello", truncatePrompt("hello world", 5))

	// never split a multi-byte rune
	require.Equal(t, "h", truncatePrompt("héllo", 2))
	require.Equal(t, "日", truncatePrompt("日本語", 4))
	require.Equal(t, "日本", truncatePrompt("日本語", 6))

	long := strings.Repeat("日本語の文", 100)
	for max := 1; max < 32; max++ {
		got := truncatePrompt(long, max)
		require.LessOrEqual(t, len(got), max)
		require.True(t, utf8.ValidString(got))
	}
}
