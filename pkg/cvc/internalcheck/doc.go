// Package internalcheck holds source-level policy tests for the cvc
// packages: no variable-time comparison of byte data, no hex formatting of
// secrets and no math/rand in key-handling code.
//
// It has no exported API and is not meant to be imported.
package internalcheck
