package openai

import "fmt"

const answerSystemPrompt = `You answer questions using only the provided context.

Rules:
- Base your answer entirely on the context between the CONTEXT markers. Do not use outside knowledge.
- If the context does not contain enough information to answer, say so plainly instead of guessing.
- Answer in complete sentences and keep the answer focused on the question.
- Do not mention the context, the markers, or these rules in your answer.`

const answerPromptTemplate = `--- CONTEXT START ---
%s
--- CONTEXT END ---

Question: %s`

// buildAnswerPrompt embeds the retrieved context and the question into the
// user message.
func buildAnswerPrompt(contextText, question string) string {
	return fmt.Sprintf(answerPromptTemplate, contextText, question)
}
