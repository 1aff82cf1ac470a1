package vocabulary

// Code system OIDs used throughout SPL documents.
const (
	CodeSystemLOINC          = "2.16.840.1.113883.6.1"
	CodeSystemNDC            = "2.16.840.1.113883.6.69"
	CodeSystemUNII           = "2.16.840.1.113883.4.9"
	CodeSystemFDACode        = "2.16.840.1.113883.3.26.1.1"
	CodeSystemTerritory      = "2.16.840.1.113883.5.28"
	CodeSystemCharacteristic = "2.16.840.1.113883.1.11.19255"
	CodeSystemDUNS           = "1.3.6.1.4.1.519.1"
	CodeSystemFDAApplication = "2.16.840.1.113883.3.150"
	CodeSystemOTCMonograph   = "2.16.840.1.113883.3.9421"
)

// codeSystemNames maps OIDs back to their short names, used to hint at
// what kind of identifier an organization id carries.
var codeSystemNames = map[string]string{
	CodeSystemLOINC:          "LOINC",
	CodeSystemNDC:            "NDC",
	CodeSystemUNII:           "UNII",
	CodeSystemFDACode:        "FDA_CODE",
	CodeSystemTerritory:      "TERRITORY",
	CodeSystemCharacteristic: "CHARACTERISTIC",
	CodeSystemDUNS:           "DUNS",
	CodeSystemFDAApplication: "FDA_APPLICATION",
	CodeSystemOTCMonograph:   "OTC_MONOGRAPH",
}

// CodeSystemName returns the short name for a code-system OID.
func CodeSystemName(oid string) (string, bool) {
	name, ok := codeSystemNames[oid]
	return name, ok
}

// DocumentTypeCode maps a LOINC document-type code to its category.
// Codes outside the table return ok=false; callers fall back to display
// text and filename heuristics.
func DocumentTypeCode(code string) (string, bool) {
	t, ok := documentTypeCodes[code]
	return t, ok
}

var documentTypeCodes = map[string]string{
	"34391-3": "prescription",
	"34390-5": "otc",
	"50577-6": "otc", // OTC animal drug
	"81203-2": "other", // bulk ingredient
	"53404-0": "other", // dietary supplement
}

// DEASchedule maps an FDA schedule value code to its DEA schedule label.
func DEASchedule(code string) (string, bool) {
	s, ok := deaSchedules[code]
	return s, ok
}

var deaSchedules = map[string]string{
	"C48672": "CI",
	"C48675": "CII",
	"C48676": "CIII",
	"C48677": "CIV",
	"C48679": "CV",
}
