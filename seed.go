package lectio

// Seed is the reference data a fresh database starts from.
type Seed struct {
	Versions    []*Version
	Confessions []*ConfessionDocument
}

// ConfessionDocument is a confession together with its sections. Section
// confession IDs are filled in when the document is stored.
type ConfessionDocument struct {
	Confession *Confession
	Chapters   []*Chapter
	Paragraphs []*Paragraph
	Questions  []*Question
	Articles   []*Article
}
