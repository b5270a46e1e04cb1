// Package document turns uploaded PDF and TXT files into plain UTF-8 text
// for prompt injection. Extraction is the whole job: no chunking, indexing,
// or retrieval happens here or anywhere downstream.
package document

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"
)

// extractConcurrency bounds parallel extraction in ExtractAll.
const extractConcurrency = 4

// File is one uploaded file.
type File struct {
	Name string
	Data []byte
}

// UnsupportedFormatError reports an upload that is neither PDF nor TXT.
// The upload is rejected; the session is otherwise unaffected.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (only PDF and TXT are accepted)", e.Filename)
}

// Extract returns the plain text of a single PDF or TXT file.
func Extract(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(f.Name)) {
	case ".txt":
		text, err = extractTXT(f.Data)
	case ".pdf":
		text, err = extractPDF(f.Data)
	default:
		return "", &UnsupportedFormatError{Filename: f.Name}
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Name, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%s: no extractable text", f.Name)
	}
	return text, nil
}

// ExtractAll extracts a batch of files and joins their texts with a blank
// line, preserving input order. Callers replace the session document with
// the joined result in one step, so a failed batch leaves the previous
// document untouched.
func ExtractAll(ctx context.Context, files []File) (string, error) {
	if len(files) == 0 {
		return "", nil
	}
	if len(files) == 1 {
		return Extract(ctx, files[0])
	}

	texts := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractConcurrency)
	for i, f := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			text, err := Extract(gctx, f)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(texts, "\n\n"), nil
}

// extractTXT decodes a text file: BOM stripped, CRLF normalized, invalid
// UTF-8 byte sequences replaced rather than rejected.
func extractTXT(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	text := strings.ToValidUTF8(string(data), "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text, nil
}

// extractPDF pulls the plain text layer out of a PDF. The parser panics on
// some malformed files, so the panic is converted to an ordinary error.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}
	return buf.String(), nil
}
