package query

import (
	"fmt"
	"strings"

	"github.com/poiesic/corpus/core"
)

// assembleContext concatenates retrieved chunks into the context block
// handed to the generator, best match first. Each chunk is labeled with
// its source pages so answers can cite where the text came from.
func assembleContext(chunks []core.ScoredChunk) string {
	var sb strings.Builder
	for i, scored := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[excerpt %d%s]\n", i+1, pageLabel(scored.Chunk.Metadata.Pages))
		sb.WriteString(scored.Chunk.Content)
	}
	return sb.String()
}

func pageLabel(pages []int) string {
	switch len(pages) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(", page %d", pages[0])
	default:
		return fmt.Sprintf(", pages %d-%d", pages[0], pages[len(pages)-1])
	}
}
