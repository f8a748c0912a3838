// Package ingest loads knowledge files, chunks them and writes the chunks
// into the vector index.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"yoga-rag/internal/chunker"
)

// LoadFile loads one knowledge file and returns its documents. JSON files may
// yield many documents; every other supported format yields exactly one.
func LoadFile(path string) ([]chunker.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return loadJSON(path)
	case ".pdf":
		return loadPDF(path)
	case ".txt":
		return loadText(path)
	case ".md":
		return loadMarkdown(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// SupportedFile reports whether path has a loadable extension.
func SupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".pdf", ".txt", ".md":
		return true
	}
	return false
}

// loadJSON maps a JSON array (or single object) to documents. Each record's
// display text is taken from the first matching field; records with none of
// the known fields fall back to their raw serialization. The full record is
// preserved in metadata so answers can cite the original title.
func loadJSON(path string) ([]chunker.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		var single map[string]any
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		content, err := json.Marshal(single)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize record: %w", err)
		}
		return []chunker.Document{{
			Content:  string(content),
			Metadata: map[string]any{"source": filepath.Base(path)},
		}}, nil
	}

	docs := make([]chunker.Document, 0, len(items))
	for _, item := range items {
		original, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize record: %w", err)
		}

		content := string(original)
		if v, ok := item["content"].(string); ok {
			content = v
		} else if v, ok := item["text"].(string); ok {
			content = v
		} else if q, ok := item["question"].(string); ok {
			if a, ok := item["answer"].(string); ok {
				content = fmt.Sprintf("Question: %s\nAnswer: %s", q, a)
			}
		}

		docs = append(docs, chunker.Document{
			Content: content,
			Metadata: map[string]any{
				"source":        filepath.Base(path),
				"original_data": string(original),
			},
		})
	}
	return docs, nil
}

// loadPDF extracts plain text from every page and collapses all runs of
// whitespace to single spaces, since PDF extraction produces erratic line
// breaks.
func loadPDF(path string) ([]chunker.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
	}

	content := strings.Join(strings.Fields(buf.String()), " ")
	return []chunker.Document{{
		Content:  content,
		Metadata: map[string]any{"source": filepath.Base(path)},
	}}, nil
}

func loadText(path string) ([]chunker.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return []chunker.Document{{
		Content:  string(raw),
		Metadata: map[string]any{"source": filepath.Base(path)},
	}}, nil
}

// loadMarkdown parses the markdown AST and extracts the plain text, so that
// heading markers, emphasis and link syntax do not pollute the embeddings.
func loadMarkdown(path string) ([]chunker.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(raw))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.ListItem:
			if block := nodeText(n, raw); block != "" {
				blocks = append(blocks, block)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return []chunker.Document{{
		Content:  strings.Join(blocks, "\n"),
		Metadata: map[string]any{"source": filepath.Base(path)},
	}}, nil
}

// nodeText collects the text segments beneath a block node.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
