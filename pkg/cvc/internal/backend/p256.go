package backend

import (
	"crypto/elliptic"
	"crypto/subtle"
	"fmt"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// p256 is the only engine instance; circlEngine carries no mutable state.
var p256 = &circlEngine{
	g:     group.P256,
	order: elliptic.P256().Params().N,
}

type circlEngine struct {
	g     group.Group
	order *big.Int
}

func (e *circlEngine) Curve() Curve { return P256 }

func (e *circlEngine) Order() []byte {
	return e.order.FillBytes(make([]byte, ScalarSize))
}

func (e *circlEngine) scalar(a []byte) (group.Scalar, error) {
	if len(a) != ScalarSize {
		return nil, ErrScalarLength
	}
	k := new(big.Int).SetBytes(a)
	if k.Cmp(e.order) >= 0 {
		return nil, ErrScalarRange
	}
	return e.g.NewScalar().SetBigInt(k), nil
}

func (e *circlEngine) encodeScalar(s group.Scalar) ([]byte, error) {
	raw, err := s.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return leftPad(raw, ScalarSize)
}

func (e *circlEngine) ScalarAdd(a, b []byte) ([]byte, error) {
	sa, err := e.scalar(a)
	if err != nil {
		return nil, err
	}
	sb, err := e.scalar(b)
	if err != nil {
		return nil, err
	}
	return e.encodeScalar(e.g.NewScalar().Add(sa, sb))
}

func (e *circlEngine) ScalarReduce(b []byte) []byte {
	k := new(big.Int).SetBytes(b)
	k.Mod(k, e.order)
	return k.FillBytes(make([]byte, ScalarSize))
}

func (e *circlEngine) ScalarIsZero(a []byte) bool {
	var acc byte
	for _, v := range a {
		acc |= v
	}
	return subtle.ConstantTimeByteEq(acc, 0) == 1
}

func (e *circlEngine) ScalarBelowOrder(a []byte) bool {
	if len(a) != ScalarSize {
		return false
	}
	return new(big.Int).SetBytes(a).Cmp(e.order) < 0
}

func (e *circlEngine) element(p []byte) (group.Element, error) {
	el := e.g.NewElement()
	if err := el.UnmarshalBinary(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return el, nil
}

func (e *circlEngine) encodeElement(el group.Element) ([]byte, error) {
	if el.IsIdentity() {
		return []byte{IdentityTag}, nil
	}
	out, err := el.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if len(out) != UncompressedPointSize || out[0] != UncompressedTag {
		return nil, ErrEncoding
	}
	return out, nil
}

func (e *circlEngine) PointCheck(p []byte) error {
	if len(p) == 1 && p[0] == IdentityTag {
		return nil
	}
	if len(p) != UncompressedPointSize || p[0] != UncompressedTag {
		return ErrInvalidPoint
	}
	_, err := e.element(p)
	return err
}

func (e *circlEngine) PointIsIdentity(p []byte) bool {
	return len(p) == 1 && p[0] == IdentityTag
}

func (e *circlEngine) PointAdd(p, q []byte) ([]byte, error) {
	ep, err := e.element(p)
	if err != nil {
		return nil, err
	}
	eq, err := e.element(q)
	if err != nil {
		return nil, err
	}
	return e.encodeElement(e.g.NewElement().Add(ep, eq))
}

func (e *circlEngine) MulGenerator(k []byte) ([]byte, error) {
	s, err := e.scalar(k)
	if err != nil {
		return nil, err
	}
	return e.encodeElement(e.g.NewElement().MulGen(s))
}

// leftPad returns b left-padded with zeros to size bytes.
func leftPad(b []byte, size int) ([]byte, error) {
	if len(b) > size {
		return nil, ErrEncoding
	}
	if len(b) == size {
		return b, nil
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out, nil
}
