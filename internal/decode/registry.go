package decode

import (
	"github.com/docmind/docmind/internal/xerrors"
)

// Registry holds Decoders in registration order; the first decoder whose
// CanHandle reports true is used. Unknown formats yield DECODE_UNSUPPORTED.
type Registry struct {
	decoders []Decoder
}

// NewRegistry builds a Registry with the given decoders in registration
// order. Callers typically register PlaintextDecoder last, as a catch-all.
func NewRegistry(decoders ...Decoder) *Registry {
	return &Registry{decoders: append([]Decoder{}, decoders...)}
}

// Register appends a decoder to the end of the registration order.
func (r *Registry) Register(d Decoder) {
	r.decoders = append(r.decoders, d)
}

// Decode finds the first decoder that claims path and runs it.
func (r *Registry) Decode(path string, raw []byte) (*RawDocument, error) {
	for _, d := range r.decoders {
		if d.CanHandle(path) {
			doc, err := d.Decode(path, raw)
			if err != nil {
				return nil, xerrors.Wrap(xerrors.ErrCodeDecodeError, err)
			}
			return doc, nil
		}
	}
	return nil, xerrors.New(xerrors.ErrCodeDecodeUnsupported, "no decoder registered for "+path, nil)
}

// DefaultRegistry returns a Registry with the built-in MarkdownDecoder and a
// catch-all PlaintextDecoder, covering .txt, .md, and .markdown.
func DefaultRegistry() *Registry {
	return NewRegistry(&MarkdownDecoder{}, &PlaintextDecoder{})
}
