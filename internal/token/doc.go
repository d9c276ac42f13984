// Package token defines lexical token kinds and trivia for the Nova compiler.
// Invariants:
//   - Token carries no text; the text is f.Text(tok.Span).
//   - Token.Span always lies inside the file it was lexed from.
//   - EOF is zero-width and appears exactly once, last.
//   - Keyword and operator tables are package-level literals with no init-time dependencies
//     on other packages.
//   - Built-in type names (i32, f64, bool, str, ...) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
package token
