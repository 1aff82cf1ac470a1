// Package extract walks a parsed SPL document tree and assembles the
// normalized records of the data model. Extractors are tolerant of absent
// optional data: a missing element or attribute leaves the field unset,
// and only records missing structurally required fields (a product
// without a name, an ingredient without a name) are dropped.
package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/splgraph-cli/internal/classify"
	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/vocabulary"
	"github.com/custodia-labs/splgraph-cli/internal/xmltree"
)

// Extractor assembles one SPLDocument from a parsed tree. It holds no
// state beyond the tree and the source filename (used as a document-type
// hint of last resort).
type Extractor struct {
	root     *xmltree.Node
	filename string
}

// New creates an extractor for one document tree.
func New(root *xmltree.Node, filename string) *Extractor {
	return &Extractor{root: root, filename: filename}
}

// Document extracts every record of the document. The derived block is
// left zero-valued; the derivation engine fills it from the extracted
// records. parsedAt stamps the source block and is the only field that
// varies between runs on the same input.
func (e *Extractor) Document(parsedAt time.Time) domain.SPLDocument {
	return domain.SPLDocument{
		Source: domain.Source{
			Dataset:       "DailyMed",
			Format:        "SPL",
			InputFilename: e.filename,
			ParsedAt:      parsedAt.UTC().Format(time.RFC3339),
			ParserVersion: domain.ParserVersion,
		},
		SPL:      e.Metadata(),
		Labeler:  e.Labeler(),
		Products: e.Products(),
		Sections: e.Sections(),
	}
}

// Metadata extracts the document-level metadata block.
func (e *Extractor) Metadata() domain.SPLMetadata {
	meta := domain.SPLMetadata{DocumentType: domain.DocTypeUnknown}

	if id := e.root.Find("id"); id != nil {
		meta.DocumentID = documentID(id)
	}
	if setID := e.root.Find("setId"); setID != nil {
		meta.SetID = documentID(setID)
	}
	if version := e.root.Find("versionNumber"); version != nil {
		meta.VersionNumber = parseIntAttr(version, "value")
	}
	if eff := e.root.Find("effectiveTime"); eff != nil {
		meta.EffectiveTime = optAttr(eff, "value")
	}
	if title := e.root.Find("title"); title != nil {
		meta.Title = optText(title.TextContent())
	}
	if code := e.root.Find("code"); code != nil {
		meta.DocumentType = classify.DocumentType(
			code.Attr("code"), code.Attr("displayName"), e.filename)
	}

	return meta
}

// Labeler extracts the labeler organization and its identifiers.
// Organization ids keep document order with duplicates by (root,
// extension) suppressed.
func (e *Extractor) Labeler() domain.Labeler {
	labeler := domain.Labeler{OrgIDs: []domain.OrgID{}}

	// A document may carry several author elements; the labeler is the
	// first one that actually names an organization.
	var org *xmltree.Node
	for _, author := range e.root.FindAllDeep("author") {
		if org = author.FindDeep("representedOrganization"); org != nil {
			break
		}
	}
	if org == nil {
		return labeler
	}

	if name := org.Find("name"); name != nil {
		labeler.Name = optText(name.TextContent())
	}

	for _, id := range org.FindAllDeep("id") {
		root := id.Attr("root")
		ext := id.Attr("extension")
		if root == "" && ext == "" {
			continue
		}

		var typeHint *string
		if name, ok := vocabulary.CodeSystemName(root); ok {
			typeHint = &name
		}

		orgID := domain.OrgID{
			Root:      optText(root),
			Extension: optText(ext),
			TypeHint:  typeHint,
		}
		if !containsOrgID(labeler.OrgIDs, orgID) {
			labeler.OrgIDs = append(labeler.OrgIDs, orgID)
		}
	}

	return labeler
}

// documentID reads the root/extension attribute pair of an id element.
func documentID(n *xmltree.Node) domain.DocumentID {
	return domain.DocumentID{
		Root:      optAttr(n, "root"),
		Extension: optAttr(n, "extension"),
	}
}

func containsOrgID(ids []domain.OrgID, candidate domain.OrgID) bool {
	for _, id := range ids {
		if strEq(id.Root, candidate.Root) && strEq(id.Extension, candidate.Extension) {
			return true
		}
	}
	return false
}

// Products extracts all products. The common case is a doubly-nested
// manufacturedProduct wrapper; when that yields nothing it falls back to
// single-level product nodes that do not themselves wrap a nested
// product, so wrapper/child pairs are never double-counted.
func (e *Extractor) Products() []domain.Product {
	products := []domain.Product{}

	for _, wrapper := range e.root.FindAllDeep("manufacturedProduct") {
		for _, inner := range wrapper.FindAll("manufacturedProduct") {
			if p := e.product(inner); p != nil {
				products = append(products, *p)
			}
		}
	}

	if len(products) == 0 {
		for _, node := range e.root.FindAllDeep("manufacturedProduct") {
			if node.Find("manufacturedProduct") != nil {
				continue
			}
			if p := e.product(node); p != nil {
				products = append(products, *p)
			}
		}
	}

	return products
}

// product parses one manufacturedProduct element. Returns nil when the
// product has no discoverable name.
func (e *Extractor) product(elem *xmltree.Node) *domain.Product {
	product := domain.Product{
		Routes:      []string{},
		DosageForms: []string{},
		NDC:         domain.NDCInfo{ProductNDCs: []string{}, PackageNDCs: []string{}},
		Regulatory:  domain.Regulatory{RxOtcFlag: domain.RxOtcUnknown},
		Ingredients: []domain.Ingredient{},
		Packages:    []domain.Package{},
	}

	if name := elem.Find("name"); name != nil {
		product.ProductName = optText(name.TextContent())
	}
	if product.ProductName == nil {
		return nil
	}

	if generic := elem.FindDeep("genericMedicine").Find("name"); generic != nil {
		product.GenericName = optText(generic.TextContent())
	}

	if form := elem.Find("formCode").Attr("displayName"); form != "" {
		product.DosageForms = append(product.DosageForms, form)
	}

	if ndc := elem.Find("code").Attr("code"); classify.IsNDC(ndc) {
		if classify.IsPackageNDC(ndc) {
			product.NDC.PackageNDCs = append(product.NDC.PackageNDCs, ndc)
		} else {
			product.NDC.ProductNDCs = append(product.NDC.ProductNDCs, ndc)
		}
	}

	product.Ingredients = e.ingredients(elem)
	product.Packages = e.packages(elem)

	// Package NDCs found while walking the packaging subtree are merged
	// back into the product-level NDC info.
	for _, pkg := range product.Packages {
		if pkg.PackageNDC != nil && !containsString(product.NDC.PackageNDCs, *pkg.PackageNDC) {
			product.NDC.PackageNDCs = append(product.NDC.PackageNDCs, *pkg.PackageNDC)
		}
	}

	product.Routes = e.collectRoutes(elem)
	product.Regulatory = e.regulatory()
	product.PhysicalCharacteristics = e.physicalCharacteristics()

	return &product
}

// collectRoutes gathers routes from the product's own consumedIn subtree
// and then from the document's first product-bearing element, de-duplicated
// by value. Documents often declare a route once for every product they
// contain; the document-level fallback can also attribute shared routes to
// every product in multi-product documents with per-product routes.
func (e *Extractor) collectRoutes(elem *xmltree.Node) []string {
	routes := []string{}

	if route := elem.FindDeep("consumedIn").FindDeep("routeCode").Attr("displayName"); route != "" {
		routes = append(routes, route)
	}

	if first := e.root.FindDeep("manufacturedProduct"); first != nil {
		for _, rc := range first.FindAllDeep("routeCode") {
			route := rc.Attr("displayName")
			if route != "" && !containsString(routes, route) {
				routes = append(routes, route)
			}
		}
	}

	return routes
}

// ingredients extracts the ingredient list of one product. Ingredients
// without a resolvable substance name are discarded.
func (e *Extractor) ingredients(elem *xmltree.Node) []domain.Ingredient {
	ingredients := []domain.Ingredient{}

	for _, ing := range elem.FindAllDeep("ingredient") {
		ingredient := domain.Ingredient{
			Role: classify.IngredientRole(ing.Attr("classCode")),
		}

		if substance := ing.FindDeep("ingredientSubstance"); substance != nil {
			if name := substance.Find("name"); name != nil {
				ingredient.Name = optText(name.TextContent())
			}
			if code := substance.Find("code"); code.Attr("codeSystem") == vocabulary.CodeSystemUNII {
				ingredient.UNII = optAttr(code, "code")
			}
		}

		if quantity := ing.Find("quantity"); quantity != nil {
			strength := parseQuantity(quantity)
			ingredient.Strength = &strength

			if numerator := quantity.Find("numerator"); numerator != nil {
				unit := numerator.Attr("unit")
				if potency, ok := classify.HomeopathicPotency(numerator.Attr("value"), unit); ok {
					ingredient.Homeopathic = &domain.HomeopathicInfo{
						Potency:        strPtr(potency),
						SourceMaterial: ingredient.Name,
					}
				}
			}
		}

		if ingredient.Name != nil {
			ingredients = append(ingredients, ingredient)
		}
	}

	return ingredients
}

// parseQuantity reads a ratio quantity. Non-numeric or missing values
// leave the numeric field unset; units pass through as provided.
func parseQuantity(quantity *xmltree.Node) domain.Strength {
	var strength domain.Strength

	if numerator := quantity.Find("numerator"); numerator != nil {
		strength.NumeratorValue = parseFloatAttr(numerator, "value")
		strength.NumeratorUnit = optAttr(numerator, "unit")
	}
	if denominator := quantity.Find("denominator"); denominator != nil {
		strength.DenominatorValue = parseFloatAttr(denominator, "value")
		strength.DenominatorUnit = optAttr(denominator, "unit")
	}

	return strength
}

// packages extracts packaging records from a product subtree. A package
// with neither an NDC nor a quantity is discarded.
func (e *Extractor) packages(elem *xmltree.Node) []domain.Package {
	packages := []domain.Package{}

	for _, content := range elem.FindAllDeep("asContent") {
		var pkg domain.Package

		if numerator := content.Find("quantity", "numerator"); numerator != nil {
			pkg.Quantity = &domain.PackageQuantity{
				Value: parseFloatAttr(numerator, "value"),
				Unit:  optAttr(numerator, "unit"),
			}
		}

		if container := content.FindDeep("containerPackagedProduct"); container != nil {
			if ndc := container.Find("code").Attr("code"); classify.IsNDC(ndc) {
				pkg.PackageNDC = strPtr(ndc)
			}
			if form := container.Find("formCode"); form != nil {
				pkg.Description = optAttr(form, "displayName")
			}
		}

		if marketing := content.FindDeep("marketingAct"); marketing != nil {
			if status := marketing.Find("statusCode"); status != nil {
				pkg.MarketingStatus = optAttr(status, "code")
			}
			if low := marketing.FindDeep("low"); low != nil {
				pkg.MarketingStartDate = optAttr(low, "value")
			}
		}

		if pkg.PackageNDC != nil || pkg.Quantity != nil {
			packages = append(packages, pkg)
		}
	}

	return packages
}

// regulatory extracts approval and scheduling information. Approval and
// characteristic elements are declared once per document and apply to
// every product in it, so the scan is document-wide.
func (e *Extractor) regulatory() domain.Regulatory {
	reg := domain.Regulatory{RxOtcFlag: domain.RxOtcUnknown}

	if approval := e.root.FindDeep("approval"); approval != nil {
		appID := approval.Find("id")
		if ext := appID.Attr("extension"); ext != "" {
			reg.ApplicationNumber = strPtr(ext)
		}

		if code := approval.Find("code"); code != nil {
			display := code.Attr("displayName")

			if display != "" {
				reg.MarketingCategory = strPtr(display)
			} else if c := code.Attr("code"); c != "" {
				reg.MarketingCategory = strPtr(c)
			}

			reg.RxOtcFlag = classify.RxOtcFlag(display)

			if strings.Contains(strings.ToLower(display), "monograph") {
				reg.OTCMonographID = optAttr(appID, "extension")
			}
		}
	}

	for _, char := range e.root.FindAllDeep("characteristic") {
		if !strings.Contains(char.Find("code").Attr("code"), "SPLCONTROLLED") {
			continue
		}
		if schedule, ok := vocabulary.DEASchedule(char.Find("value").Attr("code")); ok {
			reg.DEASchedule = strPtr(schedule)
		}
	}

	return reg
}

// physicalCharacteristics collects appearance characteristics from the
// document. Returns nil unless at least one characteristic was found.
func (e *Extractor) physicalCharacteristics() *domain.PhysicalCharacteristics {
	var chars domain.PhysicalCharacteristics
	found := false

	for _, char := range e.root.FindAllDeep("characteristic") {
		code := char.Find("code")
		value := char.Find("value")
		if code == nil || value == nil {
			continue
		}

		switch code.Attr("code") {
		case "SPLCOLOR":
			chars.Color = optAttr(value, "displayName")
			found = true
		case "SPLSHAPE":
			chars.Shape = optAttr(value, "displayName")
			found = true
		case "SPLSIZE":
			size := strings.TrimSpace(value.Attr("value") + " " + value.Attr("unit"))
			chars.Size = optText(size)
			found = true
		case "SPLIMPRINT":
			chars.Imprint = optText(value.TextContent())
			found = true
		case "SPLFLAVOR":
			chars.Flavor = optAttr(value, "displayName")
			found = true
		}
	}

	if !found {
		return nil
	}
	return &chars
}

// Sections extracts every section that carries a code or a title.
func (e *Extractor) Sections() []domain.Section {
	sections := []domain.Section{}

	for _, elem := range e.root.FindAllDeep("section") {
		section := e.section(elem)
		if section.Code != nil || (section.Title != nil && *section.Title != "") {
			sections = append(sections, section)
		}
	}

	return sections
}

func (e *Extractor) section(elem *xmltree.Node) domain.Section {
	var section domain.Section

	if code := elem.Find("code"); code != nil {
		section.Code = optAttr(code, "code")
		section.CodeSystem = optAttr(code, "codeSystem")
		section.Display = optAttr(code, "displayName")
	}

	if title := elem.Find("title"); title != nil {
		section.Title = optText(title.TextContent())
	}

	// Untitled sections with a known code borrow the canonical display name.
	if section.Title == nil && section.Code != nil {
		if name, ok := vocabulary.SectionDisplayName(*section.Code); ok {
			section.Title = strPtr(name)
		}
	}

	if text := elem.Find("text"); text != nil {
		section.TextXHTML = strPtr(text.XHTML())
		section.TextPlain = optText(text.TextContent())
	}

	return section
}

// optAttr returns a pointer to the attribute value, or nil when the node
// is absent or the attribute is missing or empty.
func optAttr(n *xmltree.Node, name string) *string {
	if n == nil {
		return nil
	}
	return optText(n.Attr(name))
}

// optText returns nil for the empty string, a pointer otherwise.
func optText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strPtr(s string) *string { return &s }

func strEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// parseIntAttr parses an integer attribute, returning nil on a missing
// attribute or a parse failure. Never zero-on-failure: downstream
// consumers must be able to tell "absent" from "version 0".
func parseIntAttr(n *xmltree.Node, name string) *int {
	raw := n.Attr(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

// parseFloatAttr parses a float attribute, returning nil on missing or
// non-numeric values.
func parseFloatAttr(n *xmltree.Node, name string) *float64 {
	raw := n.Attr(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}
