package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"lintel/internal/source"
	"lintel/internal/token"
)

// TokenOutput is the JSON form of one token: class, kind, text and both ends.
type TokenOutput struct {
	Class     string `json:"type"`
	Kind      string `json:"kind"`
	Text      string `json:"text,omitempty"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	EndLine   uint32 `json:"endLine"`
	EndColumn uint32 `json:"endColumn"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-12s %-15s", i+1, tok.Kind.Class(), tok.Kind); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if tok.NewlineBefore {
			fmt.Fprint(w, " (newline before)")
		}
		if tok.Has(token.FlagUnterminated) {
			fmt.Fprint(w, " (unterminated)")
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		output = append(output, TokenOutput{
			Class:     tok.Kind.Class().String(),
			Kind:      tok.Kind.String(),
			Text:      tok.Text,
			Line:      startPos.Line,
			Column:    startPos.Col,
			EndLine:   endPos.Line,
			EndColumn: endPos.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
