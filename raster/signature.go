/*
DESCRIPTION
  signature.go provides Signature, a fixed-size content fingerprint derived
  from an Image, used as a fast-rejection test before a full byte compare.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package raster

import "encoding/binary"

// FNV-64a constants, per the standard basis/prime (matches hash/fnv's
// New64a exactly; spelled out here since Signature folds the hash into a
// wider per-pixel sum alongside channel sums and XOR, rather than calling
// hash/fnv directly over the whole buffer).
const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// Signature is an immutable content fingerprint for an Image. Two images
// are signature-equal iff all fields match; this is necessary but not
// sufficient for the images being byte-identical.
type Signature struct {
	Width, Height    int
	SumB, SumG, SumR, SumA uint64
	XOR32            uint32
	FNV1a64          uint64
}

// Sign computes the Signature of img. Sign is a pure function: calling it
// twice on equal images (including clones) always yields equal results.
func Sign(img Image) Signature {
	var sig Signature
	sig.Width, sig.Height = img.Width, img.Height
	if !img.Ok() {
		return sig
	}

	h := fnvOffset64
	var xor uint32
	b := img.Bytes
	for i := 0; i+3 < len(b); i += 4 {
		bb, gg, rr, aa := b[i], b[i+1], b[i+2], b[i+3]
		sig.SumB += uint64(bb)
		sig.SumG += uint64(gg)
		sig.SumR += uint64(rr)
		sig.SumA += uint64(aa)

		word := binary.LittleEndian.Uint32([]byte{bb, gg, rr, aa})
		xor ^= word

		for _, c := range [4]byte{bb, gg, rr, aa} {
			h ^= uint64(c)
			h *= fnvPrime64
		}
	}
	sig.XOR32 = xor
	sig.FNV1a64 = h
	return sig
}

// SignatureEqual reports whether a and b match on all eight fields.
func SignatureEqual(a, b Signature) bool {
	return a == b
}

// Identical reports whether a and b are byte-identical. It fails fast on
// signature mismatch before doing the full byte compare, so it is never
// more expensive than computing the two signatures plus, at worst, one
// full compare.
func Identical(a, b Image, sigA, sigB Signature) bool {
	if !SignatureEqual(sigA, sigB) {
		return false
	}
	return BytesEqual(a, b)
}
