// Package testing provides a deterministic harness for motion-engine tests:
// a controllable clock, a hand-pumped frame scheduler, and fake surface
// elements that record applied styles. Production code never imports this
// package.
package testing
