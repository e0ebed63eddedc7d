package pipeline

// Default values for text extraction.
const (
	// DefaultModelName is the default Gemini model used for extraction.
	DefaultModelName = "gemini-2.5-flash"

	// Currency is the single fixed currency of the tracker.
	Currency = "IDR"
)
