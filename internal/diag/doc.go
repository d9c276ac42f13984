// Package diag holds the diagnostic model shared by every phase of the front end.
//
// A Diagnostic is plain data: severity, an optional stable Code, a message, the
// file it belongs to and one or more labeled spans (the first primary label is
// the cause, secondary labels give context). Phases never return diagnostics as
// errors; they hand them to a Reporter and keep going, and the driver collects
// them in a Bag per compilation unit.
//
// Codes are grouped by phase:
//
//	1xxx  LEX  tokenizer
//	2xxx  SYN  parser
//	4xxx  IO   loading files
//
// The only conditions that stop a phase are resource limits, reported as a
// *LimitError (see ErrNestingTooDeep and ErrSourceTooLarge). Rendering lives in
// package diagfmt; FormatGoldenDiagnostics is the one-line format used by tests.
package diag
