package domain

// IngredientProfile classifies ingredients as helpful or harmful for one
// attribute value. Static configuration, not user data. Entries are
// lower-case; matching is case-insensitive substring containment in either
// direction, so "protein" matches "hydrolyzed wheat protein" and vice
// versa. That fuzziness is deliberate.
type IngredientProfile struct {
	Beneficial []string
	Avoid      []string
}

var hairTypeIngredients = map[HairType]IngredientProfile{
	HairTypeStraight: {
		Beneficial: []string{"panthenol", "biotin", "rice water", "green tea extract"},
		Avoid:      []string{"shea butter", "castor oil"},
	},
	HairTypeWavy: {
		Beneficial: []string{"aloe vera", "flaxseed gel", "sea salt", "panthenol"},
		Avoid:      []string{"mineral oil", "petrolatum"},
	},
	HairTypeCurly: {
		Beneficial: []string{"shea butter", "aloe vera", "panthenol", "glycerin", "jojoba oil"},
		Avoid:      []string{"sodium lauryl sulfate", "denatured alcohol", "mineral oil"},
	},
	HairTypeCoily: {
		Beneficial: []string{"castor oil", "shea butter", "coconut oil", "honey", "avocado oil"},
		Avoid:      []string{"sodium lauryl sulfate", "denatured alcohol"},
	},
	HairTypeProtective: {
		Beneficial: []string{"tea tree oil", "peppermint oil", "castor oil", "witch hazel"},
		Avoid:      []string{"petrolatum", "mineral oil"},
	},
}

var porosityIngredients = map[Porosity]IngredientProfile{
	PorosityLow: {
		Beneficial: []string{"glycerin", "honey", "argan oil", "grapeseed oil"},
		Avoid:      []string{"shea butter", "castor oil", "hydrolyzed protein"},
	},
	PorosityMedium: {
		Beneficial: []string{"panthenol", "aloe vera", "jojoba oil"},
		Avoid:      []string{"denatured alcohol"},
	},
	PorosityHigh: {
		Beneficial: []string{"shea butter", "castor oil", "hydrolyzed protein", "coconut oil"},
		Avoid:      []string{"sodium lauryl sulfate", "denatured alcohol"},
	},
}

var densityIngredients = map[Density]IngredientProfile{
	DensityLow: {
		Beneficial: []string{"biotin", "caffeine", "rosemary oil"},
		Avoid:      []string{"petrolatum"},
	},
	DensityMedium: {
		Beneficial: []string{"panthenol", "aloe vera"},
	},
	DensityHigh: {
		Beneficial: []string{"shea butter", "coconut oil"},
	},
}

var thicknessIngredients = map[Thickness]IngredientProfile{
	ThicknessFine: {
		Beneficial: []string{"rice water", "hydrolyzed wheat protein", "biotin"},
		Avoid:      []string{"castor oil", "shea butter"},
	},
	ThicknessMedium: {
		Beneficial: []string{"aloe vera", "panthenol"},
	},
	ThicknessCoarse: {
		Beneficial: []string{"shea butter", "coconut oil", "olive oil"},
		Avoid:      []string{"denatured alcohol"},
	},
}

var damageIngredients = map[DamageLevel]IngredientProfile{
	DamageNone: {
		Beneficial: []string{"aloe vera", "green tea extract"},
	},
	DamageSome: {
		Beneficial: []string{"hydrolyzed keratin", "panthenol", "argan oil"},
		Avoid:      []string{"sodium lauryl sulfate"},
	},
	DamageSevere: {
		Beneficial: []string{"hydrolyzed keratin", "ceramides", "panthenol", "argan oil"},
		Avoid:      []string{"sodium lauryl sulfate", "denatured alcohol", "fragrance"},
	},
}

// attributeIngredients pairs one decoded attribute value's ingredient
// profile with its display phrase, in code order.
type attributeIngredients struct {
	attribute ProfileAttribute
	phrase    string
	profile   IngredientProfile
}

// ingredientProfilesFor resolves the five attribute-level ingredient
// profiles for a decoded hair profile, in code order.
func ingredientProfilesFor(p HairProfile) [codeSegments]attributeIngredients {
	return [codeSegments]attributeIngredients{
		{AttrHairType, hairTypePhrases[p.HairType], hairTypeIngredients[p.HairType]},
		{AttrPorosity, porosityPhrases[p.Porosity], porosityIngredients[p.Porosity]},
		{AttrDensity, densityPhrases[p.Density], densityIngredients[p.Density]},
		{AttrThickness, thicknessPhrases[p.Thickness], thicknessIngredients[p.Thickness]},
		{AttrDamage, damagePhrases[p.Damage], damageIngredients[p.Damage]},
	}
}
