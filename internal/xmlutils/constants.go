// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// OFX contains the XPath expressions used for OFX 2 statement parsing.
// Transaction fields are relative to a STMTTRN node.
type OFX struct {
	Transaction string
	Type        string
	Posted      string
	Amount      string
	FitID       string
	Name        string
	Memo        string
}

// DefaultOFXPaths returns an OFX struct with the default XPath expressions
func DefaultOFXPaths() OFX {
	return OFX{
		Transaction: "//BANKTRANLIST/STMTTRN",
		Type:        "TRNTYPE",
		Posted:      "DTPOSTED",
		Amount:      "TRNAMT",
		FitID:       "FITID",
		Name:        "NAME",
		Memo:        "MEMO",
	}
}
