// Package backend hosts the arithmetic engine the cvc packages are built on.
// Everything above this package treats scalars and points as byte strings;
// the concrete group implementation lives here so the rest of the repository
// never touches it directly.
package backend
