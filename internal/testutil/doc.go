// Package testutil provides wire fixtures and fragmentation helpers shared
// by the package tests: builders for framed run-event records and choppers
// that cut a wire stream into arbitrary fragments for boundary-invariance
// tests.
package testutil
