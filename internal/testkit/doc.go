// Package testkit holds checks shared by tests across the front end: stream and
// tree invariants that must hold for every input, and golden-file comparison.
package testkit
