// Package token defines lexical token kinds for the JavaScript subset lintel analyzes.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Comments are real tokens (LineComment, BlockComment) so token-level rules can
//     inspect them; the parser filters them out of its stream.
//   - Contextual words (let, static, async, await, yield, of, get, set, as, from)
//     are lexed as Ident. The parser decides their role from context.
//   - Tokens are values and are never mutated after the lexer returns them.
package token
