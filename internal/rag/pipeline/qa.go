package pipeline

import (
	"context"
	"fmt"
	"strings"

	"docmuse/internal/rag/interfaces"
	"docmuse/internal/rag/schema"
	"docmuse/pkg/logger"
)

// CannotAnswer is the fixed reply the model is instructed to give when the
// retrieved context does not contain the answer.
const CannotAnswer = "I cannot answer this question based on the provided documents."

// QAPipeline turns a question plus retrieved chunks into a grounded answer.
type QAPipeline struct {
	LLM interfaces.LLM
	log *logger.Logger
}

// NewQAPipeline creates a new question-answering pipeline.
func NewQAPipeline(llm interfaces.LLM, log *logger.Logger) *QAPipeline {
	return &QAPipeline{LLM: llm, log: log}
}

// Run generates an answer to the question using only the given chunks as
// context.
func (p *QAPipeline) Run(ctx context.Context, question string, chunks []schema.RetrievedChunk) (string, error) {
	prompt := buildPrompt(question, chunks)
	answer, err := p.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// buildPrompt assembles the grounding prompt. The instructions forbid the
// model from using knowledge outside the supplied context.
func buildPrompt(question string, chunks []schema.RetrievedChunk) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant that answers questions strictly based on the provided documents.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Answer using ONLY the information in the context below.\n")
	sb.WriteString("- Do not use any outside knowledge.\n")
	sb.WriteString("- If the context does not contain the answer, reply exactly: \"")
	sb.WriteString(CannotAnswer)
	sb.WriteString("\"\n\n")
	sb.WriteString("Context:\n")
	for i, chunk := range chunks {
		sb.WriteString(fmt.Sprintf("[%d] (source: %s)\n", i+1, chunk.Document.Source()))
		sb.WriteString(chunk.Document.Text)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
