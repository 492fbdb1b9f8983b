package upstream

import (
	"context"
	"net/http"
)

// Ask submits a question and returns the answer text.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	req := map[string]string{"question": question}
	var res struct {
		Answer string `json:"answer"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/qa/ask", "qa_ask", req, &res); err != nil {
		return "", err
	}
	return res.Answer, nil
}

// GeneratePDF renders an answer (and optionally its question) into a PDF
// document. The returned content type comes from the upstream response.
func (c *Client) GeneratePDF(ctx context.Context, answer, question string) ([]byte, string, error) {
	req := map[string]string{"answer": answer}
	if question != "" {
		req["question"] = question
	}
	return c.doRaw(ctx, http.MethodPost, "/pdf/generate", "pdf_generate", req)
}
