// Package penalty implements the gap-affine penalty model (C1): accepting
// user-facing penalties and transforming them into the non-negative internal
// form the wavefront core operates on.
package penalty

import (
	"errors"
	"fmt"
)

// ErrInvalidPenalties is returned when a penalty set violates the invariants
// required for the Eizenga normalization to hold.
var ErrInvalidPenalties = errors.New("invalid penalties")

// Kind distinguishes the gap model a Set was built with.
type Kind uint8

const (
	Linear Kind = iota
	Affine
	DualAffine
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Affine:
		return "affine"
	case DualAffine:
		return "dual-affine"
	default:
		return "unknown"
	}
}

// Set is a normalized penalty model. The exported fields hold the user's
// original values (used to recompute a CIGAR's score in user space); the
// unexported fields hold the internal non-negative transform the wavefront
// core consumes.
type Set struct {
	Kind Kind

	Match      int32
	Mismatch   int32
	GapOpen    int32
	GapExtend  int32
	GapOpen2   int32
	GapExtend2 int32

	mism, gapo, gape   int32
	gapo2, gape2       int32
}

// NewLinear builds a linear gap penalty set (gap-open implicitly zero).
func NewLinear(match, mism, gape int32) (Set, error) {
	if err := validatePair(match, mism, gape, gape); err != nil {
		return Set{}, err
	}
	p := Set{Kind: Affine, Match: match, Mismatch: mism, GapExtend: gape}
	p.normalize()
	return p, nil
}

// NewAffine builds a single-affine-gap penalty set.
func NewAffine(match, mism, gapo, gape int32) (Set, error) {
	if err := validatePair(match, mism, gapo, gape); err != nil {
		return Set{}, err
	}
	p := Set{
		Kind: Affine,
		Match: match, Mismatch: mism, GapOpen: gapo, GapExtend: gape,
	}
	p.normalize()
	return p, nil
}

// NewDualAffine builds a two-affine-gap penalty set. The second pair is
// reserved per spec.md's Open Question (b): constructed and validated here,
// but core/align never wires it into the score loop.
func NewDualAffine(match, mism, gapo, gape, gapo2, gape2 int32) (Set, error) {
	if err := validatePair(match, mism, gapo, gape); err != nil {
		return Set{}, err
	}
	if err := validatePair(match, mism, gapo2, gape2); err != nil {
		return Set{}, err
	}
	p := Set{
		Kind: DualAffine,
		Match: match, Mismatch: mism, GapOpen: gapo, GapExtend: gape,
		GapOpen2: gapo2, GapExtend2: gape2,
	}
	p.normalize()
	return p, nil
}

func validatePair(match, mism, gapo, gape int32) error {
	switch {
	case match > mism:
		return fmt.Errorf("match %d exceeds mismatch %d: %w", match, mism, ErrInvalidPenalties)
	case match > gapo:
		return fmt.Errorf("match %d exceeds gap-open %d: %w", match, gapo, ErrInvalidPenalties)
	case match > gape:
		return fmt.Errorf("match %d exceeds gap-extend %d: %w", match, gape, ErrInvalidPenalties)
	case gapo < gape:
		return fmt.Errorf("gap-open %d is less than gap-extend %d: %w", gapo, gape, ErrInvalidPenalties)
	}
	return nil
}

// normalize applies the Eizenga transform so the internal match penalty is 0.
func (p *Set) normalize() {
	m := p.Match
	p.mism = 2*p.Mismatch - 2*m
	p.gapo = 2 * p.GapOpen
	p.gape = 2*p.GapExtend - m
	if p.Kind == DualAffine {
		p.gapo2 = 2 * p.GapOpen2
		p.gape2 = 2*p.GapExtend2 - m
	}
}

// Internal exposes the normalized, non-negative penalties the wavefront core
// operates on.
func (p Set) Internal() (mism, gapo, gape int32) { return p.mism, p.gapo, p.gape }

// NScores returns the size of the C3 Scope's circular buffer: the maximum
// number of scores any sparsify rule ever needs to look back.
func (p Set) NScores() int32 {
	n := p.gapo + p.gape
	if p.mism > n {
		n = p.mism
	}
	return n + 1
}
