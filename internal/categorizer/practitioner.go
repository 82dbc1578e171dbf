package categorizer

import (
	"regexp"
)

// Capitation payment descriptions embed the contract registration and
// practitioner number as a fixed-order pair, e.g.
// "HAEVGID 132052 LANR 3243603".
var practitionerCodePattern = regexp.MustCompile(`(?i)HAEVGID\s*(\d+)\s*LANR\s*(\d+)`)

// PractitionerCode is the resolved practitioner code pair of a description.
// Arzt and Standort stay empty when the LANR is not in the lookup table; the
// raw codes are recorded either way.
type PractitionerCode struct {
	Haevgid  string
	Lanr     string
	Arzt     string
	Standort string
}

// ExtractPractitioner searches a description for the HAEVGID/LANR pair and
// resolves it against the practitioner table. Returns nil when the
// description carries no code pair.
func (c *Categorizer) ExtractPractitioner(description string) *PractitionerCode {
	m := practitionerCodePattern.FindStringSubmatch(description)
	if m == nil {
		return nil
	}

	code := &PractitionerCode{
		Haevgid: m[1],
		Lanr:    m[2],
	}
	if p, ok := c.practitioners[code.Lanr]; ok {
		code.Arzt = p.Name
		code.Standort = p.Standort
	}
	return code
}
