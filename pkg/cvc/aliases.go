package cvc

import (
	"github.com/MyNextID/cvc-go/pkg/cvc/curve"
	"github.com/MyNextID/cvc-go/pkg/cvc/h2f"
)

// KeyMaterial is an alias for curve.KeyMaterial.
type KeyMaterial = curve.KeyMaterial

// FieldElement is an alias for h2f.FieldElement.
type FieldElement = h2f.FieldElement

// HashFamily is an alias for h2f.Family.
type HashFamily = h2f.Family

const (
	SHA2 = h2f.SHA2
	SHA3 = h2f.SHA3
)

// Encoding sizes re-exported from the curve package.
const (
	KeySize             = curve.ScalarSize
	UncompressedKeySize = curve.UncompressedPointSize
)
