package blocksearch

// Extractor narrows a page to its main content before it is searched, so
// templates do not match inside navigation, sidebars or footers.
type Extractor interface {
	// Extract returns the main content of html as HTML.
	Extract(html string) (string, error)
}
