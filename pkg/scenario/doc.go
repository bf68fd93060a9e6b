// Package scenario composes request sequences into named conformance tests,
// each producing a pass/fail verdict with a diagnostic and timing. The full
// suite runs to completion in a fixed order regardless of individual
// failures; every scenario drives its own fresh subprocess.
package scenario
