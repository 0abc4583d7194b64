// Package domain contains the core match-scoring logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// HairType represents the overall hair pattern.
type HairType string

const (
	HairTypeStraight   HairType = "straight"
	HairTypeWavy       HairType = "wavy"
	HairTypeCurly      HairType = "curly"
	HairTypeCoily      HairType = "coily"
	HairTypeProtective HairType = "protective"
)

// Porosity represents how readily hair absorbs moisture.
type Porosity string

const (
	PorosityLow    Porosity = "low"
	PorosityMedium Porosity = "medium"
	PorosityHigh   Porosity = "high"
)

// Density represents how many strands grow per area of scalp.
type Density string

const (
	DensityLow    Density = "low"
	DensityMedium Density = "medium"
	DensityHigh   Density = "high"
)

// Thickness represents the width of individual strands.
type Thickness string

const (
	ThicknessFine   Thickness = "fine"
	ThicknessMedium Thickness = "medium"
	ThicknessCoarse Thickness = "coarse"
)

// DamageLevel represents accumulated chemical/heat damage.
type DamageLevel string

const (
	DamageNone   DamageLevel = "none"
	DamageSome   DamageLevel = "some"
	DamageSevere DamageLevel = "severe"
)

// HairProfile is the five-attribute hair profile produced by analysis.
// Profiles are immutable; retaking analysis creates a new one.
type HairProfile struct {
	HairType  HairType  `json:"hair_type"`
	Porosity  Porosity  `json:"porosity"`
	Density   Density   `json:"density"`
	Thickness Thickness `json:"thickness"`
	Damage    DamageLevel `json:"damage"`
}

// ProfileAttribute names one of the five profile attributes, in code order.
type ProfileAttribute string

const (
	AttrHairType  ProfileAttribute = "hair_type"
	AttrPorosity  ProfileAttribute = "porosity"
	AttrDensity   ProfileAttribute = "density"
	AttrThickness ProfileAttribute = "thickness"
	AttrDamage    ProfileAttribute = "damage"
)

// ProfileAttributes is the fixed segment order of a profile code.
var ProfileAttributes = [5]ProfileAttribute{
	AttrHairType, AttrPorosity, AttrDensity, AttrThickness, AttrDamage,
}

const (
	codeSeparator = "-"
	codeSegments  = 5
)

// ErrInvalidProfileCode is returned when a profile code cannot be decoded.
var ErrInvalidProfileCode = errors.New("invalid profile code")

// Token alphabets. Hair type uses two-letter tokens, the rest single-letter.
// Severe damage is "X" so it cannot collide with "S" (some).
var (
	hairTypeTokens = map[HairType]string{
		HairTypeStraight:   "ST",
		HairTypeWavy:       "WV",
		HairTypeCurly:      "CU",
		HairTypeCoily:      "CO",
		HairTypeProtective: "PR",
	}
	porosityTokens = map[Porosity]string{
		PorosityLow:    "L",
		PorosityMedium: "M",
		PorosityHigh:   "H",
	}
	densityTokens = map[Density]string{
		DensityLow:    "L",
		DensityMedium: "M",
		DensityHigh:   "H",
	}
	thicknessTokens = map[Thickness]string{
		ThicknessFine:   "F",
		ThicknessMedium: "M",
		ThicknessCoarse: "C",
	}
	damageTokens = map[DamageLevel]string{
		DamageNone:   "N",
		DamageSome:   "S",
		DamageSevere: "X",
	}
)

// Default tokens used when an attribute value is unknown or missing.
// Encoding is total: it never fails, it falls back.
const (
	defaultHairTypeToken  = "ST"
	defaultPorosityToken  = "M"
	defaultDensityToken   = "M"
	defaultThicknessToken = "M"
	defaultDamageToken    = "N"
)

var (
	hairTypeFromToken  = invert(hairTypeTokens)
	porosityFromToken  = invert(porosityTokens)
	densityFromToken   = invert(densityTokens)
	thicknessFromToken = invert(thicknessTokens)
	damageFromToken    = invert(damageTokens)
)

func invert[K ~string](tokens map[K]string) map[string]K {
	out := make(map[string]K, len(tokens))
	for v, t := range tokens {
		out[t] = v
	}
	return out
}

// EncodeProfile encodes a HairProfile into its compact five-segment code,
// e.g. {curly, high, medium, fine, none} -> "CU-H-M-F-N".
// Unknown attribute values encode as the attribute's default token.
func EncodeProfile(p HairProfile) string {
	segs := [codeSegments]string{
		tokenOr(hairTypeTokens, p.HairType, defaultHairTypeToken),
		tokenOr(porosityTokens, p.Porosity, defaultPorosityToken),
		tokenOr(densityTokens, p.Density, defaultDensityToken),
		tokenOr(thicknessTokens, p.Thickness, defaultThicknessToken),
		tokenOr(damageTokens, p.Damage, defaultDamageToken),
	}

	return strings.Join(segs[:], codeSeparator)
}

func tokenOr[K ~string](tokens map[K]string, v K, fallback string) string {
	if t, ok := tokens[v]; ok {
		return t
	}
	return fallback
}

// DecodeProfileCode decodes a profile code back into a HairProfile.
// It fails when the code does not split into exactly five segments or any
// segment is outside its attribute's alphabet.
func DecodeProfileCode(code string) (HairProfile, error) {
	segs := strings.Split(code, codeSeparator)
	if len(segs) != codeSegments {
		return HairProfile{}, fmt.Errorf("%w: %q has %d segments, want %d",
			ErrInvalidProfileCode, code, len(segs), codeSegments)
	}

	hairType, ok := hairTypeFromToken[segs[0]]
	if !ok {
		return HairProfile{}, segmentErr(code, AttrHairType, segs[0])
	}
	porosity, ok := porosityFromToken[segs[1]]
	if !ok {
		return HairProfile{}, segmentErr(code, AttrPorosity, segs[1])
	}
	density, ok := densityFromToken[segs[2]]
	if !ok {
		return HairProfile{}, segmentErr(code, AttrDensity, segs[2])
	}
	thickness, ok := thicknessFromToken[segs[3]]
	if !ok {
		return HairProfile{}, segmentErr(code, AttrThickness, segs[3])
	}
	damage, ok := damageFromToken[segs[4]]
	if !ok {
		return HairProfile{}, segmentErr(code, AttrDamage, segs[4])
	}

	return HairProfile{
		HairType:  hairType,
		Porosity:  porosity,
		Density:   density,
		Thickness: thickness,
		Damage:    damage,
	}, nil
}

func segmentErr(code string, attr ProfileAttribute, token string) error {
	return fmt.Errorf("%w: %q has unknown %s token %q", ErrInvalidProfileCode, code, attr, token)
}

// ValidProfileCode reports whether code decodes cleanly.
func ValidProfileCode(code string) bool {
	_, err := DecodeProfileCode(code)
	return err == nil
}

// Display phrases per attribute value. Used only to build match reasons,
// never for scoring decisions.
var (
	hairTypePhrases = map[HairType]string{
		HairTypeStraight:   "straight hair",
		HairTypeWavy:       "wavy hair",
		HairTypeCurly:      "curly hair",
		HairTypeCoily:      "coily hair",
		HairTypeProtective: "protective-style hair",
	}
	porosityPhrases = map[Porosity]string{
		PorosityLow:    "low porosity",
		PorosityMedium: "medium porosity",
		PorosityHigh:   "high porosity",
	}
	densityPhrases = map[Density]string{
		DensityLow:    "low density",
		DensityMedium: "medium density",
		DensityHigh:   "high density",
	}
	thicknessPhrases = map[Thickness]string{
		ThicknessFine:   "fine strands",
		ThicknessMedium: "medium strands",
		ThicknessCoarse: "coarse strands",
	}
	damagePhrases = map[DamageLevel]string{
		DamageNone:   "healthy hair",
		DamageSome:   "somewhat damaged hair",
		DamageSevere: "severely damaged hair",
	}
)

// DescribeProfileCode decodes a code into human-readable phrases keyed by
// attribute, e.g. "high porosity". It is the explanation-text counterpart
// of DecodeProfileCode and shares its failure modes.
func DescribeProfileCode(code string) (map[ProfileAttribute]string, error) {
	p, err := DecodeProfileCode(code)
	if err != nil {
		return nil, err
	}

	return map[ProfileAttribute]string{
		AttrHairType:  hairTypePhrases[p.HairType],
		AttrPorosity:  porosityPhrases[p.Porosity],
		AttrDensity:   densityPhrases[p.Density],
		AttrThickness: thicknessPhrases[p.Thickness],
		AttrDamage:    damagePhrases[p.Damage],
	}, nil
}
