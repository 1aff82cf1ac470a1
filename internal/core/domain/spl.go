package domain

// ParserVersion identifies the extraction rule set. Bump when extraction
// behavior changes in a way downstream consumers can observe.
const ParserVersion = "1.0.0"

// Source records where a parsed document came from. ParsedAt is the only
// non-deterministic output field.
type Source struct {
	Dataset       string `json:"dataset"`
	Format        string `json:"format"`
	InputFilename string `json:"input_filename"`
	ParsedAt      string `json:"parsed_at"`
	ParserVersion string `json:"parser_version"`
}

// DocumentID is an HL7 instance identifier: root names the issuing
// authority (an OID), extension is the local identifier. Either part may
// be absent.
type DocumentID struct {
	Root      *string `json:"root"`
	Extension *string `json:"extension"`
}

// SPLMetadata is the document-level metadata block.
//
// SetID is stable across all versions of a label; DocumentID is unique
// per version.
type SPLMetadata struct {
	DocumentID    DocumentID `json:"document_id"`
	SetID         DocumentID `json:"set_id"`
	VersionNumber *int       `json:"version_number"`
	EffectiveTime *string    `json:"effective_time"`
	Title         *string    `json:"title"`
	DocumentType  string     `json:"document_type"`
}

// OrgID is one identifier carried by the labeler organization. TypeHint
// names the code system the id belongs to when the root OID is
// recognized.
type OrgID struct {
	Root      *string `json:"root"`
	Extension *string `json:"extension"`
	TypeHint  *string `json:"type_hint"`
}

// Labeler is the organization responsible for the label.
type Labeler struct {
	Name   *string `json:"name"`
	OrgIDs []OrgID `json:"org_ids"`
}

// NDCInfo separates product-level (2-segment) from package-level
// (3-segment) NDC codes. Segment count is the sole discriminator.
type NDCInfo struct {
	ProductNDCs []string `json:"product_ndcs"`
	PackageNDCs []string `json:"package_ndcs"`
}

// Regulatory captures approval and scheduling information.
type Regulatory struct {
	RxOtcFlag         string  `json:"rx_otc_flag"`
	ApplicationNumber *string `json:"application_number"`
	OTCMonographID    *string `json:"otc_monograph_id"`
	MarketingCategory *string `json:"marketing_category"`
	DEASchedule       *string `json:"dea_schedule"`
}

// Strength is a ratio quantity, e.g. "500 mg per 1 TABLET".
type Strength struct {
	NumeratorValue   *float64 `json:"numerator_value"`
	NumeratorUnit    *string  `json:"numerator_unit"`
	DenominatorValue *float64 `json:"denominator_value"`
	DenominatorUnit  *string  `json:"denominator_unit"`
}

// HomeopathicInfo is populated only when an ingredient's numerator unit
// encodes a homeopathic potency scale ([hp_C] or [hp_X]).
type HomeopathicInfo struct {
	Potency        *string `json:"potency"`
	SourceMaterial *string `json:"source_material"`
}

// Ingredient is one substance in a product. An ingredient without a
// resolvable name is never emitted.
type Ingredient struct {
	Name        *string          `json:"name"`
	Role        string           `json:"role"`
	UNII        *string          `json:"unii"`
	Strength    *Strength        `json:"strength"`
	Homeopathic *HomeopathicInfo `json:"homeopathic"`
}

// Ingredient role values.
const (
	RoleActive   = "active"
	RoleInactive = "inactive"
	RoleOther    = "other"
)

// PackageQuantity is the count/amount inside one package.
type PackageQuantity struct {
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
}

// Package is one packaging configuration. A package with neither an NDC
// nor a quantity is never emitted.
type Package struct {
	PackageNDC         *string          `json:"package_ndc"`
	Description        *string          `json:"description"`
	Quantity           *PackageQuantity `json:"quantity"`
	MarketingStartDate *string          `json:"marketing_start_date"`
	MarketingStatus    *string          `json:"marketing_status"`
}

// PhysicalCharacteristics describes a dose form's appearance. Present on
// a product only when at least one field was found.
type PhysicalCharacteristics struct {
	Color   *string `json:"color"`
	Shape   *string `json:"shape"`
	Size    *string `json:"size"`
	Imprint *string `json:"imprint"`
	Flavor  *string `json:"flavor"`
}

// Product is one manufactured product in the label. ProductName is
// required; a product without one is dropped during extraction.
type Product struct {
	ProductName             *string                  `json:"product_name"`
	GenericName             *string                  `json:"generic_name"`
	Routes                  []string                 `json:"routes"`
	DosageForms             []string                 `json:"dosage_forms"`
	NDC                     NDCInfo                  `json:"ndc"`
	Regulatory              Regulatory               `json:"regulatory"`
	Ingredients             []Ingredient             `json:"ingredients"`
	Packages                []Package                `json:"packages"`
	PhysicalCharacteristics *PhysicalCharacteristics `json:"physical_characteristics"`
}

// Section is one content section of the label. Emitted only when it has
// a code or a title.
type Section struct {
	CodeSystem *string `json:"code_system"`
	Code       *string `json:"code"`
	Display    *string `json:"display"`
	Title      *string `json:"title"`
	TextXHTML  *string `json:"text_xhtml"`
	TextPlain  *string `json:"text_plain"`
}

// MergeKeys are deterministic join keys for cross-document identity
// resolution. Order is part of the contract: downstream consumers may
// rely on first-key semantics.
type MergeKeys struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

// SectionPresenceFlags marks which clinically significant section
// categories appear anywhere in the document.
type SectionPresenceFlags struct {
	BoxedWarning            bool `json:"boxed_warning"`
	IndicationsAndUsage     bool `json:"indications_and_usage"`
	Contraindications       bool `json:"contraindications"`
	WarningsAndPrecautions  bool `json:"warnings_and_precautions"`
	StorageAndHandling      bool `json:"storage_and_handling"`
	DosageAndAdministration bool `json:"dosage_and_administration"`
	AdverseReactions        bool `json:"adverse_reactions"`
	DrugInteractions        bool `json:"drug_interactions"`
}

// Derived holds the fields computed from already-extracted records.
type Derived struct {
	MergeKeys            MergeKeys            `json:"merge_keys"`
	SectionPresenceFlags SectionPresenceFlags `json:"section_presence_flags"`
}

// SPLDocument is the aggregate root for one parsed label. It is fully
// populated before being handed to the graph synthesizer and never
// mutated afterwards.
type SPLDocument struct {
	Source   Source      `json:"source"`
	SPL      SPLMetadata `json:"spl"`
	Labeler  Labeler     `json:"labeler"`
	Products []Product   `json:"products"`
	Sections []Section   `json:"sections"`
	Derived  Derived     `json:"derived"`
}

// Document type values.
const (
	DocTypePrescription = "prescription"
	DocTypeOTC          = "otc"
	DocTypeHomeopathic  = "homeopathic"
	DocTypeOther        = "other"
	DocTypeUnknown      = "unknown"
)

// RX/OTC flag values.
const (
	RxOtcRX      = "RX"
	RxOtcOTC     = "OTC"
	RxOtcUnknown = "UNKNOWN"
)
