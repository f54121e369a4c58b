//go:build !debug
// +build !debug

// Package tag provides build tag dependent constants.
package tag

// Debug enables expensive runtime invariant checks.
// Build with -tags debug to turn it on.
const Debug = false
