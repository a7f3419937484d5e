package prompt

import (
	"strings"

	"github.com/futig/docqa/internal/entity"
)

// TemplateVersion identifies the answer format the parser expects.
// Bump it whenever answerFormat changes.
const TemplateVersion = "entity-table/v1"

const contextSeparator = "---------------------"

const answerFormat = `List the name, description, and personality of every character relevant to the query in the following format.
Separate characters with exactly one blank line. Do not add any other text.

Name: [name]
Description: [description]
Personality: [personality]`

// Build assembles the completion prompt: retrieved context in ranked order,
// then the query, then the fixed answer format instructions.
func Build(query string, retrieved []entity.ScoredNode) string {
	var b strings.Builder

	b.WriteString("Context information is below.\n")
	b.WriteString(contextSeparator)
	b.WriteByte('\n')
	for i, sn := range retrieved {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(sn.Node.Chunk.Text)
	}
	b.WriteByte('\n')
	b.WriteString(contextSeparator)
	b.WriteByte('\n')

	b.WriteString("Given the context information and not prior knowledge, answer the query.\n")
	b.WriteString("Query: ")
	b.WriteString(strings.TrimSpace(query))
	b.WriteString("\n\n")
	b.WriteString(answerFormat)
	b.WriteByte('\n')

	return b.String()
}
