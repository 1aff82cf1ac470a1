// Package derive computes the cross-document merge keys and the
// section-presence flags from one document's already-extracted records.
package derive

import (
	"strings"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/vocabulary"
)

// Build computes the full derived block for a document.
func Build(doc *domain.SPLDocument) domain.Derived {
	return domain.Derived{
		MergeKeys:            MergeKeys(doc),
		SectionPresenceFlags: PresenceFlags(doc.Sections),
	}
}

// MergeKeys builds the deterministic join keys in fixed order.
//
// Primary: the set id (when present) followed by every product-level NDC
// across all products, in document order. Secondary: the document id
// (when present) followed by every distinct ingredient UNII, de-duplicated
// by insertion, in document order. Downstream consumers rely on first-key
// semantics, so the ordering is part of the contract.
func MergeKeys(doc *domain.SPLDocument) domain.MergeKeys {
	keys := domain.MergeKeys{Primary: []string{}, Secondary: []string{}}

	if doc.SPL.SetID.Root != nil {
		keys.Primary = append(keys.Primary, "set_id:"+*doc.SPL.SetID.Root)
	}
	for _, product := range doc.Products {
		for _, ndc := range product.NDC.ProductNDCs {
			keys.Primary = append(keys.Primary, "ndc:"+ndc)
		}
	}

	if doc.SPL.DocumentID.Root != nil {
		keys.Secondary = append(keys.Secondary, "doc_id:"+*doc.SPL.DocumentID.Root)
	}
	for _, product := range doc.Products {
		for _, ing := range product.Ingredients {
			if ing.UNII == nil {
				continue
			}
			key := "unii:" + *ing.UNII
			if !contains(keys.Secondary, key) {
				keys.Secondary = append(keys.Secondary, key)
			}
		}
	}

	return keys
}

// PresenceFlags evaluates the eight section-presence categories. Each
// category first tests its known-code set against every section code;
// when no code matches, five of the categories fall back to a keyword
// test against upper-cased titles. Dosage/administration, adverse
// reactions and drug interactions are code-match only.
func PresenceFlags(sections []domain.Section) domain.SectionPresenceFlags {
	codes := make(map[string]bool)
	var titles []string
	for _, s := range sections {
		if s.Code != nil {
			codes[*s.Code] = true
		}
		if s.Title != nil {
			titles = append(titles, strings.ToUpper(*s.Title))
		}
	}

	codeMatch := func(cat vocabulary.FlagCategory) bool {
		for _, code := range vocabulary.FlagCodes(cat) {
			if codes[code] {
				return true
			}
		}
		return false
	}
	titleMatch := func(keywords ...string) bool {
		for _, title := range titles {
			for _, kw := range keywords {
				if strings.Contains(title, kw) {
					return true
				}
			}
		}
		return false
	}

	return domain.SectionPresenceFlags{
		BoxedWarning:            codeMatch(vocabulary.FlagBoxedWarning) || titleMatch("BOXED WARNING"),
		IndicationsAndUsage:     codeMatch(vocabulary.FlagIndicationsAndUsage) || titleMatch("INDICATION"),
		Contraindications:       codeMatch(vocabulary.FlagContraindications) || titleMatch("CONTRAINDICATION"),
		WarningsAndPrecautions:  codeMatch(vocabulary.FlagWarningsAndPrecautions) || titleMatch("WARNING", "PRECAUTION"),
		StorageAndHandling:      codeMatch(vocabulary.FlagStorageAndHandling) || titleMatch("STORAGE", "HANDLING"),
		DosageAndAdministration: codeMatch(vocabulary.FlagDosageAndAdministration),
		AdverseReactions:        codeMatch(vocabulary.FlagAdverseReactions),
		DrugInteractions:        codeMatch(vocabulary.FlagDrugInteractions),
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
