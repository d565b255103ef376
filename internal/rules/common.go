package rules

// CommonDefinitions is the stock menu of PHI patterns offered by the init
// wizard. Users pick a subset and can add their own afterward.
func CommonDefinitions() []Definition {
	return []Definition{
		{Regex: `SUB-\d{4,6}`, Description: "Subject ID (SUB-XXXX format)"},
		{Regex: `\b\d{3}-\d{2}-\d{4}\b`, Description: "SSN (Social Security Number)"},
		{Regex: `MRN\d{6,10}`, Description: "Medical Record Number (MRN format)"},
		{Regex: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`, Description: "Email addresses"},
		{Regex: `\b\d{10}\b|\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`, Description: "Phone numbers (10 digits)"},
		{Regex: `\b\d{5}(?:-\d{4})?\b`, Description: "ZIP codes (5 or 9 digit)"},
	}
}
