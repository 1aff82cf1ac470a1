package vocabulary

// FlagCategory names one of the eight section-presence flag categories.
type FlagCategory string

const (
	FlagBoxedWarning             FlagCategory = "BOXED_WARNING"
	FlagIndicationsAndUsage      FlagCategory = "INDICATIONS_AND_USAGE"
	FlagContraindications        FlagCategory = "CONTRAINDICATIONS"
	FlagWarningsAndPrecautions   FlagCategory = "WARNINGS_AND_PRECAUTIONS"
	FlagStorageAndHandling       FlagCategory = "STORAGE_AND_HANDLING"
	FlagDosageAndAdministration  FlagCategory = "DOSAGE_AND_ADMINISTRATION"
	FlagAdverseReactions         FlagCategory = "ADVERSE_REACTIONS"
	FlagDrugInteractions         FlagCategory = "DRUG_INTERACTIONS"
)

// FlagCodes returns the known LOINC codes for a presence-flag category.
func FlagCodes(cat FlagCategory) []string {
	return flagCodes[cat]
}

var flagCodes = map[FlagCategory][]string{
	FlagBoxedWarning:            {"34066-1"},
	FlagIndicationsAndUsage:     {"34067-9", "43679-0"},
	FlagContraindications:       {"34070-3", "43680-8"},
	FlagWarningsAndPrecautions:  {"34071-1", "43685-7", "34072-9", "50566-9", "50567-7"},
	FlagStorageAndHandling:      {"44425-7", "34069-5"},
	FlagDosageAndAdministration: {"34068-7"},
	FlagAdverseReactions:        {"34084-4"},
	FlagDrugInteractions:        {"34073-7"},
}

// SectionDisplayName returns the canonical display name for a known LOINC
// section code. Used as a title fallback when a section carries a known
// code but no title of its own.
func SectionDisplayName(code string) (string, bool) {
	name, ok := loincSections[code]
	return name, ok
}

var loincSections = map[string]string{
	"34066-1": "BOXED WARNING SECTION",
	"34067-9": "INDICATIONS & USAGE SECTION",
	"34068-7": "DOSAGE & ADMINISTRATION SECTION",
	"34069-5": "HOW SUPPLIED SECTION",
	"34070-3": "CONTRAINDICATIONS SECTION",
	"34071-1": "WARNINGS SECTION",
	"34072-9": "GENERAL PRECAUTIONS SECTION",
	"34073-7": "DRUG INTERACTIONS SECTION",
	"34074-5": "GERIATRIC USE SECTION",
	"34075-2": "LABORATORY TESTS SECTION",
	"34076-0": "INFORMATION FOR PATIENTS SECTION",
	"34079-4": "DRUG & OR LABORATORY TEST INTERACTIONS SECTION",
	"34080-2": "NURSING MOTHERS SECTION",
	"34081-0": "PEDIATRIC USE SECTION",
	"34082-8": "ABUSE SECTION",
	"34083-6": "DEPENDENCE SECTION",
	"34084-4": "ADVERSE REACTIONS SECTION",
	"34085-1": "CONTROLLED SUBSTANCE SECTION",
	"34086-9": "DRUG ABUSE AND DEPENDENCE SECTION",
	"34087-7": "MECHANISM OF ACTION SECTION",
	"34088-5": "OVERDOSAGE SECTION",
	"34089-3": "DESCRIPTION SECTION",
	"34090-1": "CLINICAL PHARMACOLOGY SECTION",
	"34092-7": "CARCINOGENESIS & MUTAGENESIS SECTION",
	"34093-5": "REFERENCES SECTION",
	"42228-7": "PREGNANCY SECTION",
	"42229-5": "SPL UNCLASSIFIED SECTION",
	"43678-2": "DOSAGE FORMS & STRENGTHS SECTION",
	"43679-0": "INDICATIONS AND USAGE SECTION",
	"43680-8": "CONTRAINDICATIONS SECTION",
	"43681-6": "PHARMACODYNAMICS SECTION",
	"43682-4": "PHARMACOKINETICS SECTION",
	"43683-2": "RECENT MAJOR CHANGES SECTION",
	"43684-0": "USE IN SPECIFIC POPULATIONS SECTION",
	"43685-7": "WARNINGS AND PRECAUTIONS SECTION",
	"44425-7": "STORAGE AND HANDLING SECTION",
	"48780-1": "SPL PRODUCT DATA ELEMENTS SECTION",
	"50565-1": "OTC - KEEP OUT OF REACH OF CHILDREN SECTION",
	"50566-9": "OTC - STOP USE SECTION",
	"50567-7": "OTC - WHEN USING SECTION",
	"50568-5": "OTC - ASK DOCTOR/PHARMACIST SECTION",
	"50569-3": "OTC - ASK DOCTOR SECTION",
	"50570-1": "OTC - DO NOT USE SECTION",
	"51727-6": "INACTIVE INGREDIENT SECTION",
	"51945-4": "PACKAGE LABEL.PRINCIPAL DISPLAY PANEL",
	"53413-1": "OTC - QUESTIONS SECTION",
	"53414-9": "OTC - PREGNANCY OR BREAST FEEDING SECTION",
	"55105-1": "OTC - PURPOSE SECTION",
	"55106-9": "OTC - ACTIVE INGREDIENT SECTION",
	"58476-3": "SPL PATIENT PACKAGE INSERT SECTION",
	"59845-8": "INSTRUCTIONS FOR USE SECTION",
	"60561-8": "OTHER SAFETY INFORMATION",
	"68498-5": "PATIENT MEDICATION INFORMATION SECTION",
	"77290-5": "SPL MEDGUIDE SECTION",
}
