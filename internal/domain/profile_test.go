package domain

import (
	"errors"
	"testing"
)

func TestEncodeProfile(t *testing.T) {
	tests := []struct {
		name     string
		profile  HairProfile
		expected string
	}{
		{
			name: "curly high porosity",
			profile: HairProfile{
				HairType:  HairTypeCurly,
				Porosity:  PorosityHigh,
				Density:   DensityMedium,
				Thickness: ThicknessFine,
				Damage:    DamageNone,
			},
			expected: "CU-H-M-F-N",
		},
		{
			name: "coily severe damage",
			profile: HairProfile{
				HairType:  HairTypeCoily,
				Porosity:  PorosityLow,
				Density:   DensityHigh,
				Thickness: ThicknessCoarse,
				Damage:    DamageSevere,
			},
			expected: "CO-L-H-C-X",
		},
		{
			name:     "zero profile falls back to defaults",
			profile:  HairProfile{},
			expected: "ST-M-M-M-N",
		},
		{
			name: "unknown values fall back per attribute",
			profile: HairProfile{
				HairType:  HairType("mystery"),
				Porosity:  PorosityHigh,
				Density:   Density("???"),
				Thickness: ThicknessCoarse,
				Damage:    DamageLevel("melted"),
			},
			expected: "ST-H-M-C-N",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeProfile(tt.profile); got != tt.expected {
				t.Errorf("EncodeProfile() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeProfileCode_RoundTrip(t *testing.T) {
	profiles := []HairProfile{
		{HairTypeStraight, PorosityLow, DensityLow, ThicknessFine, DamageNone},
		{HairTypeWavy, PorosityMedium, DensityMedium, ThicknessMedium, DamageSome},
		{HairTypeCurly, PorosityHigh, DensityHigh, ThicknessCoarse, DamageSevere},
		{HairTypeProtective, PorosityHigh, DensityLow, ThicknessCoarse, DamageSome},
	}

	for _, p := range profiles {
		code := EncodeProfile(p)
		decoded, err := DecodeProfileCode(code)
		if err != nil {
			t.Fatalf("DecodeProfileCode(%q) error: %v", code, err)
		}
		if decoded != p {
			t.Errorf("round trip of %q = %+v, want %+v", code, decoded, p)
		}
	}
}

func TestDecodeProfileCode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"too few segments", "CU-H-M"},
		{"too many segments", "CU-H-M-F-N-N"},
		{"unknown hair type token", "ZZ-H-M-F-N"},
		{"unknown porosity token", "CU-Q-M-F-N"},
		{"unknown damage token", "CU-H-M-F-Q"},
		{"lowercase tokens", "cu-h-m-f-n"},
		{"garbage", "not a code at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProfileCode(tt.code)
			if err == nil {
				t.Fatalf("DecodeProfileCode(%q) expected error, got nil", tt.code)
			}
			if !errors.Is(err, ErrInvalidProfileCode) {
				t.Errorf("DecodeProfileCode(%q) error = %v, want ErrInvalidProfileCode", tt.code, err)
			}
			if ValidProfileCode(tt.code) {
				t.Errorf("ValidProfileCode(%q) = true, want false", tt.code)
			}
		})
	}
}

func TestDescribeProfileCode(t *testing.T) {
	phrases, err := DescribeProfileCode("CU-H-M-F-N")
	if err != nil {
		t.Fatalf("DescribeProfileCode() error: %v", err)
	}

	expected := map[ProfileAttribute]string{
		AttrHairType:  "curly hair",
		AttrPorosity:  "high porosity",
		AttrDensity:   "medium density",
		AttrThickness: "fine strands",
		AttrDamage:    "healthy hair",
	}

	for attr, want := range expected {
		if phrases[attr] != want {
			t.Errorf("phrase for %s = %q, want %q", attr, phrases[attr], want)
		}
	}

	if _, err := DescribeProfileCode("CU-H-M"); err == nil {
		t.Error("DescribeProfileCode with malformed code expected error, got nil")
	}
}
