package decode

// PlaintextDecoder handles .txt and any extension not otherwise claimed by
// a more specific decoder; register it last in a Registry as a catch-all.
type PlaintextDecoder struct{}

func (d *PlaintextDecoder) CanHandle(path string) bool {
	return true
}

func (d *PlaintextDecoder) Decode(path string, raw []byte) (*RawDocument, error) {
	return &RawDocument{
		Title:          titleFromStem(path),
		Plaintext:      normalizeText(raw),
		FormatMetadata: map[string]string{"format": "text"},
	}, nil
}
