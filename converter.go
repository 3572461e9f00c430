package blocksearch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms the markup of a matched element into Markdown.
	Convert(html string) (string, error)
}
