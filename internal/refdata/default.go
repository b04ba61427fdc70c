package refdata

// Default returns the built-in reference tables for a standard aesthetics
// practice. Deployments that maintain their own catalog construct one with
// New instead.
func Default() *Catalog {
	return New(defaultGoals(), defaultFindings(), defaultTreatments(), defaultPostCare())
}

func defaultGoals() []Goal {
	return []Goal{
		{Name: "Smoothen Fine Lines", Treatments: []string{"Neurotoxin", "Microneedling", "Skincare"}},
		{Name: "Restore Volume", Treatments: []string{"Dermal Filler", "Biostimulator"}},
		{Name: "Even Skin Tone", Treatments: []string{"Chemical Peel", "IPL Photofacial", "Skincare"}},
		{Name: "Improve Skin Texture", Treatments: []string{"Microneedling", "Chemical Peel", "Skincare"}},
		{Name: "Slim & Contour", Treatments: []string{"Kybella", "Ultherapy", "Neurotoxin"}},
		{Name: "Hydrate & Glow", Treatments: []string{"HydraFacial", "Skincare"}},
	}
}

func defaultFindings() []Finding {
	return []Finding{
		{Name: "Forehead Wrinkles", Goal: "Smoothen Fine Lines", Region: "Forehead", Treatments: []string{"Neurotoxin"}},
		{Name: "Glabellar Lines", Goal: "Smoothen Fine Lines", Region: "Glabella", Treatments: []string{"Neurotoxin"}},
		{Name: "Crow's Feet", Goal: "Smoothen Fine Lines", Region: "Eyes", Treatments: []string{"Neurotoxin"}},
		{Name: "Bunny Lines", Goal: "Smoothen Fine Lines", Region: "Nose", Treatments: []string{"Neurotoxin"}},
		{Name: "Nasolabial Folds", Goal: "Restore Volume", Region: "Midface", Treatments: []string{"Dermal Filler"}},
		{Name: "Marionette Lines", Goal: "Restore Volume", Region: "Lower Face", Treatments: []string{"Dermal Filler"}},
		{Name: "Thin Lips", Goal: "Restore Volume", Region: "Lips", Treatments: []string{"Dermal Filler"}},
		{Name: "Cheek Volume Loss", Goal: "Restore Volume", Region: "Cheeks", Treatments: []string{"Dermal Filler", "Biostimulator"}},
		{Name: "Temple Hollowing", Goal: "Restore Volume", Region: "Temples", Treatments: []string{"Dermal Filler", "Biostimulator"}},
		{Name: "Sun Damage", Goal: "Even Skin Tone", Region: "Face", Treatments: []string{"Chemical Peel", "IPL Photofacial", "Skincare"}},
		{Name: "Melasma", Goal: "Even Skin Tone", Region: "Face", Treatments: []string{"Chemical Peel", "Skincare"}},
		{Name: "Redness", Goal: "Even Skin Tone", Region: "Face", Treatments: []string{"IPL Photofacial", "Skincare"}},
		{Name: "Acne Scarring", Goal: "Improve Skin Texture", Region: "Face", Treatments: []string{"Microneedling", "Chemical Peel"}},
		{Name: "Enlarged Pores", Goal: "Improve Skin Texture", Region: "Face", Treatments: []string{"Microneedling", "Skincare"}},
		{Name: "Dull Skin", Goal: "Hydrate & Glow", Region: "Face", Treatments: []string{"HydraFacial", "Skincare"}},
		{Name: "Dry Skin", Goal: "Hydrate & Glow", Region: "Face", Treatments: []string{"HydraFacial", "Skincare"}},
		{Name: "Submental Fullness", Goal: "Slim & Contour", Region: "Chin", Treatments: []string{"Kybella"}},
		{Name: "Jawline Laxity", Goal: "Slim & Contour", Region: "Jawline", Treatments: []string{"Ultherapy", "Neurotoxin"}},
		{Name: "Masseter Hypertrophy", Goal: "Slim & Contour", Region: "Jawline", Treatments: []string{"Neurotoxin"}},
	}
}

func defaultTreatments() []Treatment {
	return []Treatment{
		{
			Name:            "Neurotoxin",
			Products:        []string{"Botox", "Dysport", "Xeomin", "Jeuveau", "Other"},
			QuantityUnit:    "Units",
			QuantityPresets: []string{"20", "40", "60"},
		},
		{
			Name:            "Dermal Filler",
			Products:        []string{"Juvederm Ultra", "Juvederm Voluma", "Restylane Lyft", "RHA 3", "Other"},
			QuantityUnit:    "Syringes",
			QuantityPresets: []string{"1", "2", "3"},
		},
		{
			Name:            "Biostimulator",
			Products:        []string{"Sculptra", "Radiesse", "Other"},
			QuantityUnit:    "Vials",
			QuantityPresets: []string{"1", "2"},
		},
		{
			Name:            "Kybella",
			QuantityUnit:    "Vials",
			QuantityPresets: []string{"2", "4"},
		},
		{
			Name:            "Microneedling",
			QuantityUnit:    "Sessions",
			QuantityPresets: []string{"1", "3", "6"},
		},
		{
			Name:            "Chemical Peel",
			Products:        []string{"VI Peel", "Perfect Derma", "Other"},
			QuantityUnit:    "Sessions",
			QuantityPresets: []string{"1", "3"},
		},
		{
			Name:            "IPL Photofacial",
			QuantityUnit:    "Sessions",
			QuantityPresets: []string{"1", "3"},
		},
		{
			Name:            "HydraFacial",
			QuantityUnit:    "Sessions",
			QuantityPresets: []string{"1", "3", "6"},
		},
		{
			Name:            "Ultherapy",
			QuantityUnit:    "Sessions",
			QuantityPresets: []string{"1"},
		},
		{
			Name: "Skincare",
			Products: []string{
				"Tretinoin 0.05%", "Vitamin C Serum", "Hyaluronic Acid Serum",
				"SPF 50 Sunscreen", "Gentle Cleanser", "Medical-Grade Moisturizer", "Other",
			},
		},
	}
}

func defaultPostCare() map[string]PostCare {
	return map[string]PostCare{
		"Neurotoxin": {
			Instructions: "Stay upright for 4 hours and avoid rubbing the treated area for 24 hours. No strenuous exercise until the next day.",
			Products:     []string{"Gentle Cleanser", "SPF 50 Sunscreen"},
		},
		"Dermal Filler": {
			Instructions: "Expect swelling and possible bruising for 24-48 hours. Ice intermittently and avoid alcohol for 24 hours.",
			Products:     []string{"Gentle Cleanser", "SPF 50 Sunscreen"},
		},
		"Chemical Peel": {
			Instructions: "Do not pick or peel flaking skin. Moisturize frequently and apply sunscreen daily; avoid direct sun for one week.",
			Products:     []string{"Medical-Grade Moisturizer", "SPF 50 Sunscreen"},
		},
		"Microneedling": {
			Instructions: "Skin will feel sunburned for 24 hours. Use only gentle products for 72 hours; no retinoids or acids for 5 days.",
			Products:     []string{"Hyaluronic Acid Serum", "Gentle Cleanser", "SPF 50 Sunscreen"},
		},
		"IPL Photofacial": {
			Instructions: "Darkened spots will flake off over 7-10 days. Strict sun protection is essential for two weeks.",
			Products:     []string{"SPF 50 Sunscreen", "Medical-Grade Moisturizer"},
		},
		"HydraFacial": {
			Instructions: "Avoid exfoliants for 48 hours. Skin may be slightly pink for a few hours after treatment.",
			Products:     []string{"Hyaluronic Acid Serum", "SPF 50 Sunscreen"},
		},
	}
}
