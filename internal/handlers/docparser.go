package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/merylgrace/alumni-coordinator/internal/models"
)

var errNoText = errors.New("no text found in image")

// ParseAlumniDocument uses Gemini to extract structured fields from the raw
// OCR text of a graduation document.
func ParseAlumniDocument(ctx context.Context, ocrText string) (models.ParsedDocument, error) {
	var out models.ParsedDocument

	apiKey := os.Getenv("GEMINI_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		return out, errors.New("missing GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return out, fmt.Errorf("failed to init Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-lite")
	model.GenerationConfig = genai.GenerationConfig{ResponseMIMEType: "application/json"}

	prompt := `You are an expert data extraction assistant. Extract specific fields from the following raw text of a graduation certificate or diploma and return them as clean JSON.

Rules:
1. The required fields are: "full_name", "year_of_passing", "degree", and "institution_name".
2. If a field cannot be found in the text, its value must be null.
3. Your entire response must be ONLY the JSON object, with no text before or after it.
4. Clean extracted values of stray newlines and extra whitespace.

Here is the raw text:
"""
[INSERT RAW OCR TEXT HERE]
"""`
	prompt = strings.Replace(prompt, "[INSERT RAW OCR TEXT HERE]", ocrText, 1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return out, fmt.Errorf("gemini generation failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return out, errors.New("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		} else {
			sb.WriteString(fmt.Sprint(part))
		}
	}
	jsonStr := stripCodeFences(strings.TrimSpace(sb.String()))
	if jsonStr == "" {
		return out, errors.New("no text in Gemini response")
	}
	if candidate, ok := extractFirstJSON(jsonStr); ok {
		jsonStr = candidate
	}

	// Unmarshal through a map so nulls do not fail the whole parse.
	var tmp map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &tmp); err != nil {
		return out, fmt.Errorf("failed to parse Gemini JSON: %w", err)
	}
	get := func(k string) string {
		v, ok := tmp[k]
		if !ok || v == nil {
			return ""
		}
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		default:
			b, _ := json.Marshal(t)
			return strings.TrimSpace(string(b))
		}
	}

	out.FullName = get("full_name")
	out.YearOfPassing = get("year_of_passing")
	out.Degree = get("degree")
	out.InstitutionName = get("institution_name")

	if out.FullName == "" {
		return out, errors.New("graduate name not found in document")
	}
	return out, nil
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
		if i := strings.IndexByte(s, '\n'); i != -1 {
			first := strings.TrimSpace(s[:i])
			if len(first) > 0 && len(first) < 20 {
				s = s[i+1:]
			}
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractFirstJSON pulls the first balanced JSON object or array out of s.
func extractFirstJSON(s string) (string, bool) {
	if obj, ok := extractBalanced(s, '{', '}'); ok {
		return obj, true
	}
	if arr, ok := extractBalanced(s, '[', ']'); ok {
		return arr, true
	}
	return "", false
}

func extractBalanced(s string, open, close rune) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		if r == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if r == close {
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
