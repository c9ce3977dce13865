// Package records loads leaked corporate-registry documents (one JSON file
// per company) into flat officer-at-company observations.
package records

// Document is the on-disk shape of one company file.
type Document struct {
	Corp     *CorpFields      `json:"Corp" validate:"required"`
	Officers *[]OfficerFields `json:"Officers" validate:"required"`
}

// CorpFields are the company-level keys of a document.
type CorpFields struct {
	CorpID                  string `json:"CorpId"`
	CompanyName             string `json:"CompanyName"`
	RegistrationNumber      string `json:"RegistrationNumber"`
	HoldingCompanyName      string `json:"HoldingCompanyName"`
	HoldingCompanyRegNumber string `json:"HoldingCompanyRegNumber"`
	RegistrationDate        string `json:"RegistrationDate"`
	AltName                 string `json:"AltName"`
}

// OfficerFields are the keys of one entry of a document's Officers array.
type OfficerFields struct {
	CorpOfficerID      string `json:"CorpOfficerId"`
	FullNameNormalized string `json:"FullNameNormalized"`
	FullName           string `json:"FullName"`
	Nationality        string `json:"Nationality"`
	IDNumber           string `json:"IdNumber"`
}

// CompanyRecord holds the attributes of one company. The same company
// repeats on every OfficerRecord of that company; CorpID is its key.
type CompanyRecord struct {
	CorpID                  string
	CompanyName             string
	RegistrationNumber      string
	HoldingCompanyName      string
	HoldingCompanyRegNumber string
	RegistrationDate        string
	AltName                 string // often in Burmese script
}

// OfficerRecord is one officer observed at one company.
type OfficerRecord struct {
	CompanyRecord

	OfficerRawID       string // source record id, not an identity
	FullNameNormalized string
	FullName           string
	Nationality        string
	IDNumber           string

	SourceFile string // base name of the file the record came from
	Index      int    // position in the file's Officers array
}

// Dataset is the result of loading a directory.
type Dataset struct {
	Records []OfficerRecord
	Files   int
}

func (c *CorpFields) record() CompanyRecord {
	return CompanyRecord{
		CorpID:                  c.CorpID,
		CompanyName:             c.CompanyName,
		RegistrationNumber:      c.RegistrationNumber,
		HoldingCompanyName:      c.HoldingCompanyName,
		HoldingCompanyRegNumber: c.HoldingCompanyRegNumber,
		RegistrationDate:        c.RegistrationDate,
		AltName:                 c.AltName,
	}
}
