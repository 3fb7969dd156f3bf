// Package h2f implements the RFC 9380 hash_to_field operation for the
// NIST P-256 base field using expand_message_xmd.
//
// HashToField expands a message under a domain separation tag into count
// uniformly distributed field elements:
//
//	u, err := h2f.HashToField(h2f.SHA2, 32, dst, msg, 2)
//
// The underlying expander is exported as ExpandMessageXMD for callers that
// need raw uniform bytes.
package h2f
