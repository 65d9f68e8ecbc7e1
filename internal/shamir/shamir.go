// Package shamir implements Shamir's Secret Sharing over GF(2^8).
//
// Each byte of the secret is the constant term of an independent random
// polynomial of degree t-1; a share is the evaluation of every polynomial
// at the share's x-coordinate. A share is serialized as:
//
//	index(1 byte) ‖ body(len(secret) bytes)
//
// where index is the 1-based x-coordinate (never 0, which would reveal the
// secret directly) and body[i] is the i-th polynomial evaluated at index.
//
// This package is a from-scratch implementation: no repository in the
// retrieval pack ships an importable module with this exact wire layout
// (see DESIGN.md). The field arithmetic and split/combine shape follow the
// classic GF(256) Shamir construction shown by multiple retrieved reference
// files (sigil's shamir.go, the sss.go Lagrange-interpolation approach).
package shamir

import (
	"fmt"
	"io"
)

// Split divides secret into n shares such that any t of them reconstruct
// it, and fewer than t reveal nothing. n must be in [1, 255] and
// t in [1, n].
func Split(secret []byte, t, n int, random io.Reader) ([][]byte, error) {
	if t < 1 || n < 1 || t > n {
		return nil, fmt.Errorf("shamir: invalid threshold/share parameters (t=%d, n=%d)", t, n)
	}
	if n > 255 {
		return nil, fmt.Errorf("shamir: share count %d exceeds maximum of 255", n)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("shamir: secret must not be empty")
	}

	// coeffs[i] holds the t-1 random coefficients (degree 1..t-1) for the
	// polynomial whose constant term is secret[i].
	coeffs := make([][]byte, len(secret))
	for i := range coeffs {
		coeffs[i] = make([]byte, t-1)
		if _, err := io.ReadFull(random, coeffs[i]); err != nil {
			return nil, fmt.Errorf("shamir: failed to generate polynomial coefficients: %w", err)
		}
	}

	shares := make([][]byte, n)
	for x := 1; x <= n; x++ {
		body := make([]byte, len(secret))
		for i, secretByte := range secret {
			body[i] = evalPoly(secretByte, coeffs[i], byte(x))
		}
		shares[x-1] = append([]byte{byte(x)}, body...)
	}
	return shares, nil
}

// evalPoly evaluates f(x) = constant + coeffs[0]*x + coeffs[1]*x^2 + ...
// using Horner's method in GF(256).
func evalPoly(constant byte, coeffs []byte, x byte) byte {
	// Horner from the highest-degree coefficient down to the constant term.
	result := byte(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = gfAdd(gfMul(result, x), coeffs[i])
	}
	return gfAdd(gfMul(result, x), constant)
}

// Combine reconstructs the secret from a set of shares produced by Split.
// All shares must have the same body length and distinct, nonzero indices.
// Combine does not itself enforce a minimum share count: supplying fewer
// than the original threshold silently yields an incorrect secret, per the
// mathematical properties of the scheme. Callers are responsible for
// threshold bookkeeping (see quorumsplit.Recover).
func Combine(shares [][]byte) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("shamir: no shares provided")
	}

	bodyLen := len(shares[0]) - 1
	if bodyLen < 0 {
		return nil, fmt.Errorf("shamir: malformed share (too short)")
	}

	xs := make([]byte, len(shares))
	for i, s := range shares {
		if len(s) != bodyLen+1 {
			return nil, fmt.Errorf("shamir: share %d has inconsistent length", i)
		}
		if s[0] == 0 {
			return nil, fmt.Errorf("shamir: share %d has invalid zero index", i)
		}
		for j := 0; j < i; j++ {
			if xs[j] == s[0] {
				return nil, fmt.Errorf("shamir: duplicate share index %d", s[0])
			}
		}
		xs[i] = s[0]
	}

	secret := make([]byte, bodyLen)
	ys := make([]byte, len(shares))
	for byteIdx := 0; byteIdx < bodyLen; byteIdx++ {
		for i, s := range shares {
			ys[i] = s[byteIdx+1]
		}
		secret[byteIdx] = lagrangeAtZero(xs, ys)
	}
	return secret, nil
}

// lagrangeAtZero evaluates the unique degree-(len(xs)-1) interpolating
// polynomial through the points (xs[i], ys[i]) at x = 0, which recovers the
// polynomial's constant term — the shared secret byte.
func lagrangeAtZero(xs, ys []byte) byte {
	var result byte
	for i := range xs {
		numerator := byte(1)
		denominator := byte(1)
		for j := range xs {
			if i == j {
				continue
			}
			// term for x=0: (0 - xs[j]) / (xs[i] - xs[j]); subtraction is
			// XOR in GF(256), so (0 - xs[j]) == xs[j].
			numerator = gfMul(numerator, xs[j])
			denominator = gfMul(denominator, gfAdd(xs[i], xs[j]))
		}
		term := gfMul(ys[i], gfDiv(numerator, denominator))
		result = gfAdd(result, term)
	}
	return result
}
