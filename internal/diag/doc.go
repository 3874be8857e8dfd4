// Package diag defines the diagnostic model shared by every pipeline phase.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the parser and the lint rules.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt; ordering across phases lives in
// internal/lint.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier (codes.go) with stable string form.
//     Lexer codes are LEX1xxx, parser codes SYN2xxx, rule codes LNT3xxx.
//   - RuleID – the id of the rule that produced the finding; empty for
//     lexer and parser diagnostics, which serialise it as null.
//   - Message – human oriented text in the wording users know from ESLint.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// The lexer and the parser use a diag.Reporter to decouple emission from
// storage, either directly or through NewReportBuilder and its helpers.
// Rules never see a Reporter: they report into a private buffer owned by the
// rule engine, which stamps the rule id and the configured severity.
//
// A Bag never deduplicates. Two rules flagging the same position both stay,
// and Bag.Sort is stable so equal positions keep their emission order.
package diag
