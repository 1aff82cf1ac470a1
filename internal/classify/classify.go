// Package classify resolves ambiguous or optional SPL codes to canonical
// categories. Every function is pure and applies its rules in a fixed
// precedence order: the first matching rule wins and no rule is ever
// reconsidered after a match.
package classify

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/vocabulary"
)

// ndcPattern matches product (2-segment) and package (3-segment) NDCs.
var ndcPattern = regexp.MustCompile(`^\d{4,5}-\d{3,4}(-\d{1,2})?$`)

// IsNDC reports whether a code has NDC shape. Strings outside the pattern
// are never treated as NDCs.
func IsNDC(code string) bool {
	return code != "" && ndcPattern.MatchString(code)
}

// IsPackageNDC reports whether an NDC is package-level. Exactly two
// hyphens (three segments) means package-level; otherwise product-level.
func IsPackageNDC(ndc string) bool {
	return strings.Count(ndc, "-") == 2
}

// DocumentType resolves a document-type code to one of the canonical
// categories. Precedence: exact code lookup, then display-text keywords,
// then filename prefix. Falls back to "unknown".
func DocumentType(code, displayName, filename string) string {
	if t, ok := vocabulary.DocumentTypeCode(code); ok {
		return t
	}

	display := strings.ToLower(displayName)
	switch {
	case strings.Contains(display, "prescription"):
		return domain.DocTypePrescription
	case strings.Contains(display, "otc"), strings.Contains(display, "over"):
		return domain.DocTypeOTC
	case strings.Contains(display, "homeopathic"):
		return domain.DocTypeHomeopathic
	case strings.Contains(display, "bulk"), strings.Contains(display, "dietary"):
		return domain.DocTypeOther
	}

	fn := strings.ToLower(filename)
	switch {
	case strings.HasPrefix(fn, "prescription"):
		return domain.DocTypePrescription
	case strings.HasPrefix(fn, "otc"):
		return domain.DocTypeOTC
	case strings.HasPrefix(fn, "homeopathic"):
		return domain.DocTypeHomeopathic
	case strings.HasPrefix(fn, "other"):
		return domain.DocTypeOther
	}

	return domain.DocTypeUnknown
}

// IngredientRole maps an ingredient classCode attribute to a role.
// ACTIB/ACTI are active, IACT is inactive, everything else is other.
func IngredientRole(classCode string) string {
	switch classCode {
	case "ACTIB", "ACTI":
		return domain.RoleActive
	case "IACT":
		return domain.RoleInactive
	default:
		return domain.RoleOther
	}
}

// HomeopathicPotency detects a homeopathic potency scale in a numerator
// unit. When the unit carries an [hp_C] or [hp_X] marker it returns the
// potency label: the numerator value concatenated with the scale letter
// extracted from the marker (e.g. value "30", unit "[hp_C]" -> "30C").
func HomeopathicPotency(value, unit string) (string, bool) {
	if !strings.Contains(unit, "[hp_C]") && !strings.Contains(unit, "[hp_X]") {
		return "", false
	}
	scale := strings.ReplaceAll(unit, "[hp_", "")
	scale = strings.ReplaceAll(scale, "]", "")
	return value + scale, true
}

// RxOtcFlag derives the RX/OTC flag from an approval code's display text.
// Keyword precedence: otc/monograph, then prescription/nda/anda, then
// homeopathic (marketed OTC). No match leaves UNKNOWN.
func RxOtcFlag(displayName string) string {
	display := strings.ToLower(displayName)
	switch {
	case strings.Contains(display, "otc"), strings.Contains(display, "monograph"):
		return domain.RxOtcOTC
	case strings.Contains(display, "prescription"),
		strings.Contains(display, "nda"),
		strings.Contains(display, "anda"):
		return domain.RxOtcRX
	case strings.Contains(display, "homeopathic"):
		return domain.RxOtcOTC
	default:
		return domain.RxOtcUnknown
	}
}
