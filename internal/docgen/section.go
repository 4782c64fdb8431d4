package docgen

// SectionKind tells the renderer how to lay a section out.
type SectionKind int

const (
	SectionHeader SectionKind = iota
	SectionSummary
	SectionTable
	SectionList
	SectionParagraph
)

// Section is one renderable block of the document. Table sections carry
// rows (first row is the header); the others carry lines.
type Section struct {
	Kind  SectionKind
	Title string
	Lines []string
	Table [][]string
}
