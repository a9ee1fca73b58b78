package extract

// Extractor turns decoded HTML into a Document. Implementations must be
// deterministic and free of side effects.
type Extractor interface {
    Extract(input []byte) (Document, error)
}

// ParagraphExtractor collects <p> text with FromHTML.
type ParagraphExtractor struct{}

func (ParagraphExtractor) Extract(input []byte) (Document, error) {
    return FromHTML(input)
}
