package provider

// DictionaryResult is the structured result from a dictionary API provider.
type DictionaryResult struct {
	Word string
	// Primary is the first definition of the first meaning of the first
	// entry. Empty when the provider returned no definitions.
	Primary string
	Senses  []SenseResult
}

// SenseResult represents a single word sense from an external dictionary.
type SenseResult struct {
	Definition   string
	PartOfSpeech string
}

// HasDefinition reports whether the result carries a usable primary definition.
func (r *DictionaryResult) HasDefinition() bool {
	return r != nil && r.Primary != ""
}
