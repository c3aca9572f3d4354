package store

// overlayDefaults builds a new document from the collection defaults with
// every input key laid on top. The merge is shallow: a nested value in the
// input replaces the corresponding default wholesale, it is never merged
// recursively. Neither argument is mutated.
func overlayDefaults(defaults, input Document) Document {
	merged := make(Document, len(defaults)+len(input))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range input {
		merged[k] = v
	}
	return merged
}

func copyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
