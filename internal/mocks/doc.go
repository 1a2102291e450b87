// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations can be reused: each mock exposes
// function fields for the interface methods plus call recording where
// tests commonly assert on it.
package mocks
