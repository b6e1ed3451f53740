package models

import "strings"

// Canonical archetype tags used by the cap-rate grid and the
// comparable-sales similarity scoring.
const (
	ArchetypeSFR        = "sfr"
	ArchetypeSmallMulti = "2-4"
	ArchetypeLargeMulti = "5+"
	ArchetypeMixedUse   = "mixed_use"
	ArchetypeRetail     = "retail"
	ArchetypeOffice     = "office"
	ArchetypeIndustrial = "industrial"
	ArchetypeLand       = "land"
)

// Submarket tiers recognized by the cap-rate grid.
const (
	TierPrime        = "prime"
	TierCore         = "core"
	TierStable       = "stable"
	TierTransitional = "transitional"
	TierDistressed   = "distressed"
)

// NormalizeArchetype maps a raw property-type string and an optional
// unit count onto a canonical archetype tag. Unit count wins over the
// raw string: 5 or more units is always "5+", 2-4 units "2-4". Returns
// "" when neither the string nor the unit count carries a usable
// signal; callers choose their own fallback for that case.
func NormalizeArchetype(raw string, unitCount *int) string {
	if unitCount != nil {
		if *unitCount >= 5 {
			return ArchetypeLargeMulti
		}
		if *unitCount >= 2 {
			return ArchetypeSmallMulti
		}
	}

	tag := strings.ToLower(strings.TrimSpace(raw))
	switch tag {
	case ArchetypeSFR, ArchetypeSmallMulti, ArchetypeLargeMulti,
		ArchetypeMixedUse, ArchetypeRetail, ArchetypeOffice,
		ArchetypeIndustrial, ArchetypeLand:
		return tag
	case "single_family", "single-family", "single family", "house", "sfh":
		return ArchetypeSFR
	case "duplex", "triplex", "fourplex", "2-4 unit":
		return ArchetypeSmallMulti
	case "multifamily", "apartment", "5+ unit", "multifamily_5plus":
		return ArchetypeLargeMulti
	}

	switch {
	case strings.Contains(tag, "retail"):
		return ArchetypeRetail
	case strings.Contains(tag, "office"):
		return ArchetypeOffice
	case strings.Contains(tag, "industrial"), strings.Contains(tag, "warehouse"):
		return ArchetypeIndustrial
	case strings.Contains(tag, "mixed"):
		return ArchetypeMixedUse
	case strings.Contains(tag, "land"), strings.Contains(tag, "vacant"):
		return ArchetypeLand
	}

	if unitCount != nil && *unitCount == 1 {
		return ArchetypeSFR
	}
	return ""
}

// NormalizeTier lowercases and trims a submarket tier string. Unknown
// tiers pass through unchanged; the cap-rate selector applies its own
// "stable" fallback so the report can surface what the caller sent.
func NormalizeTier(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
