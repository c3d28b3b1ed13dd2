package ai

import "strings"

const (
	DefaultChunkSize    = 250
	DefaultChunkOverlap = 50
)

// ChunkText splits text into word windows of at most chunkSize words, where
// consecutive windows share the trailing overlap words of the previous one.
// Tokenization is whitespace-only; irregular whitespace collapses to single
// spaces in the output. Empty or whitespace-only input yields [""] so the
// embed pipeline always receives at least one item. Boundaries are fully
// deterministic for a given (text, chunkSize, overlap). The caller guarantees
// chunkSize > overlap >= 0.
func ChunkText(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	if len(words) <= chunkSize {
		return []string{strings.Join(words, " ")}
	}
	step := chunkSize - overlap
	var chunks []string
	for len(words) > chunkSize {
		chunks = append(chunks, strings.Join(words[:chunkSize], " "))
		words = words[step:]
	}
	if len(words) > 0 {
		chunks = append(chunks, strings.Join(words, " "))
	}
	return chunks
}

// Chunker binds the configured window parameters.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &Chunker{size: size, overlap: overlap}
}

func (c *Chunker) Chunk(text string) []string {
	return ChunkText(text, c.size, c.overlap)
}
