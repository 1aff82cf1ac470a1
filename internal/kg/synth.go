// Package kg maps one extracted document into a knowledge-graph fragment
// of typed entities and edges.
//
// Identity derivation is the critical contract: every entity id is a
// deterministic function of the document's content, so re-running on the
// same input yields an identical graph and fragments from label versions
// of the same drug merge naturally in a downstream aggregator.
package kg

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
)

// Synthesize converts an extracted document into its graph fragment.
func Synthesize(doc *domain.SPLDocument) domain.KnowledgeGraph {
	graph := domain.KnowledgeGraph{
		Entities: []domain.KGEntity{},
		Edges:    []domain.KGEdge{},
	}

	labelID := LabelID(doc)
	orgID := OrgID(&doc.Labeler)

	// The organization entity exists only when the labeler was named.
	if doc.Labeler.Name != nil {
		graph.Entities = append(graph.Entities, domain.KGEntity{
			EntityType: domain.EntityOrganization,
			EntityID:   orgID,
			Properties: map[string]any{
				"name": deref(doc.Labeler.Name),
				"duns": firstOrgExtension(&doc.Labeler),
			},
		})
	}

	graph.Entities = append(graph.Entities, domain.KGEntity{
		EntityType: domain.EntityLabelVersion,
		EntityID:   labelID,
		Properties: map[string]any{
			"set_id":         deref(doc.SPL.SetID.Root),
			"document_id":    deref(doc.SPL.DocumentID.Root),
			"version":        derefInt(doc.SPL.VersionNumber),
			"effective_time": deref(doc.SPL.EffectiveTime),
			"title":          deref(doc.SPL.Title),
			"document_type":  doc.SPL.DocumentType,
		},
	})

	if doc.Labeler.Name != nil {
		graph.Edges = append(graph.Edges, domain.KGEdge{
			EdgeType:   domain.EdgeHasLabelVersion,
			SourceID:   orgID,
			TargetID:   labelID,
			Properties: map[string]any{},
		})
	}

	for i, product := range doc.Products {
		prodID := ProductID(&product, i)

		graph.Entities = append(graph.Entities, domain.KGEntity{
			EntityType: domain.EntityProduct,
			EntityID:   prodID,
			Properties: map[string]any{
				"name":               deref(product.ProductName),
				"generic_name":       deref(product.GenericName),
				"ndc":                product.NDC.ProductNDCs,
				"routes":             product.Routes,
				"dosage_forms":       product.DosageForms,
				"rx_otc_flag":        product.Regulatory.RxOtcFlag,
				"application_number": deref(product.Regulatory.ApplicationNumber),
			},
		})

		graph.Edges = append(graph.Edges, domain.KGEdge{
			EdgeType:   domain.EdgeHasProduct,
			SourceID:   labelID,
			TargetID:   prodID,
			Properties: map[string]any{},
		})

		if doc.Labeler.Name != nil {
			graph.Edges = append(graph.Edges, domain.KGEdge{
				EdgeType:   domain.EdgeLabeledBy,
				SourceID:   prodID,
				TargetID:   orgID,
				Properties: map[string]any{},
			})
		}

		for _, pkg := range product.Packages {
			// A package with only a quantity produces no entity.
			if pkg.PackageNDC == nil {
				continue
			}
			pkgID := "package:" + *pkg.PackageNDC

			var qtyValue, qtyUnit any
			if pkg.Quantity != nil {
				qtyValue = derefFloat(pkg.Quantity.Value)
				qtyUnit = deref(pkg.Quantity.Unit)
			}

			graph.Entities = append(graph.Entities, domain.KGEntity{
				EntityType: domain.EntityPackage,
				EntityID:   pkgID,
				Properties: map[string]any{
					"ndc":         *pkg.PackageNDC,
					"description": deref(pkg.Description),
					"quantity":    qtyValue,
					"unit":        qtyUnit,
				},
			})

			graph.Edges = append(graph.Edges, domain.KGEdge{
				EdgeType:   domain.EdgeHasPackage,
				SourceID:   prodID,
				TargetID:   pkgID,
				Properties: map[string]any{},
			})
		}

		for _, ing := range product.Ingredients {
			ingID := IngredientID(&ing)

			var strengthValue, strengthUnit any
			if ing.Strength != nil {
				strengthValue = derefFloat(ing.Strength.NumeratorValue)
				strengthUnit = deref(ing.Strength.NumeratorUnit)
			}

			graph.Entities = append(graph.Entities, domain.KGEntity{
				EntityType: domain.EntityIngredient,
				EntityID:   ingID,
				Properties: map[string]any{
					"name":           deref(ing.Name),
					"unii":           deref(ing.UNII),
					"role":           ing.Role,
					"strength_value": strengthValue,
					"strength_unit":  strengthUnit,
				},
			})

			graph.Edges = append(graph.Edges, domain.KGEdge{
				EdgeType:   domain.EdgeHasIngredient,
				SourceID:   prodID,
				TargetID:   ingID,
				Properties: map[string]any{"role": ing.Role},
			})
		}
	}

	for _, section := range doc.Sections {
		// Sections without a code produce no entity.
		if section.Code == nil {
			continue
		}
		sectionID := fmt.Sprintf("section:%s:%s", labelID, *section.Code)

		textLength := 0
		if section.TextPlain != nil {
			textLength = len(*section.TextPlain)
		}

		graph.Entities = append(graph.Entities, domain.KGEntity{
			EntityType: domain.EntitySection,
			EntityID:   sectionID,
			Properties: map[string]any{
				"code":        *section.Code,
				"code_system": deref(section.CodeSystem),
				"title":       deref(section.Title),
				"display":     deref(section.Display),
				"text_length": textLength,
			},
		})

		graph.Edges = append(graph.Edges, domain.KGEdge{
			EdgeType:   domain.EdgeHasSection,
			SourceID:   labelID,
			TargetID:   sectionID,
			Properties: map[string]any{},
		})
	}

	return graph
}

// LabelID derives the label-version entity id from the set id, falling
// back to the document id.
func LabelID(doc *domain.SPLDocument) string {
	if doc.SPL.SetID.Root != nil {
		return "label:" + *doc.SPL.SetID.Root
	}
	if doc.SPL.DocumentID.Root != nil {
		return "label:" + *doc.SPL.DocumentID.Root
	}
	return "label:unknown"
}

// OrgID derives the organization entity id from the first organization
// identifier's extension, or "unknown" when the labeler carries none.
func OrgID(labeler *domain.Labeler) string {
	if len(labeler.OrgIDs) > 0 && labeler.OrgIDs[0].Extension != nil {
		return "org:" + *labeler.OrgIDs[0].Extension
	}
	return "org:unknown"
}

// firstOrgExtension returns the first organization identifier's
// extension as a property value, or nil when the labeler carries no ids.
func firstOrgExtension(labeler *domain.Labeler) any {
	if len(labeler.OrgIDs) == 0 {
		return nil
	}
	return deref(labeler.OrgIDs[0].Extension)
}

// ProductID derives the product entity id from the first product NDC,
// falling back to the product's position in the document.
func ProductID(product *domain.Product, index int) string {
	if len(product.NDC.ProductNDCs) > 0 {
		return "product:" + product.NDC.ProductNDCs[0]
	}
	return fmt.Sprintf("product:unknown_%d", index)
}

// IngredientID derives the ingredient entity id from the UNII when
// present. Ingredients without a UNII fall back to the first 12 hex
// characters of an md5 digest of the name. The digest and truncation are
// fixed: previously generated identifiers must keep resolving to the
// same entity.
func IngredientID(ing *domain.Ingredient) string {
	if ing.UNII != nil {
		return "ingredient:" + *ing.UNII
	}
	name := ""
	if ing.Name != nil {
		name = *ing.Name
	}
	sum := md5.Sum([]byte(name))
	return "ingredient:" + hex.EncodeToString(sum[:])[:12]
}

// deref converts an optional string to a JSON-friendly value: the string
// itself, or nil when absent.
func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func derefFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
