package site

// SectionID identifies a scroll-anchored block of the page
type SectionID string

const (
	SectionHome          SectionID = "home"
	SectionEntrepreneurs SectionID = "entrepreneurs"
	SectionStudents      SectionID = "students"
	SectionMission       SectionID = "mission"
	SectionProgramme     SectionID = "programme"
	SectionFAQ           SectionID = "faq"
	SectionContact       SectionID = "contact"
)

// sectionOrder is document order, which is also the tracker's priority order
var sectionOrder = []SectionID{
	SectionHome,
	SectionEntrepreneurs,
	SectionStudents,
	SectionMission,
	SectionProgramme,
	SectionFAQ,
	SectionContact,
}

var defaultLabels = map[SectionID]string{
	SectionHome:          "Home",
	SectionEntrepreneurs: "For Entrepreneurs",
	SectionStudents:      "For Students",
	SectionMission:       "Mission",
	SectionProgramme:     "Programme",
	SectionFAQ:           "FAQ",
	SectionContact:       "Contact",
}

// Order returns the section identifiers in document order
func Order() []SectionID {
	order := make([]SectionID, len(sectionOrder))
	copy(order, sectionOrder)
	return order
}

// Valid reports whether id is one of the fixed section identifiers
func (id SectionID) Valid() bool {
	_, ok := defaultLabels[id]
	return ok
}

// DefaultLabel returns the built-in navigation label for id
func (id SectionID) DefaultLabel() string {
	return defaultLabels[id]
}

func (id SectionID) String() string {
	return string(id)
}

// ParseSectionID converts s into a SectionID, reporting whether it is known
func ParseSectionID(s string) (SectionID, bool) {
	id := SectionID(s)
	return id, id.Valid()
}
