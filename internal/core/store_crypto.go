package core

import (
	"context"
	"encoding/base64"

	"github.com/docmind/docmind/internal/crypto"
	"github.com/docmind/docmind/internal/store"
	"github.com/docmind/docmind/internal/xerrors"
)

// cryptoStore wraps a *store.SQLiteStore and transparently seals/opens
// Document.Content at rest. Every method that doesn't touch content is
// promoted unchanged through the embedded store, so cryptoStore satisfies
// the same narrow Store interfaces (ingest.Store, search.Store, graph.Store)
// the plain SQLiteStore does.
type cryptoStore struct {
	*store.SQLiteStore
	engine *crypto.SecretBoxEngine
}

func newCryptoStore(s *store.SQLiteStore, engine *crypto.SecretBoxEngine) *cryptoStore {
	return &cryptoStore{SQLiteStore: s, engine: engine}
}

func (c *cryptoStore) seal(plaintext string) (string, error) {
	sealed, err := c.engine.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed.Marshal()), nil
}

func (c *cryptoStore) open(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", xerrors.New(xerrors.ErrCodeEncryptionInvalidMAC, "content is not a valid sealed blob", err)
	}
	sealed, err := crypto.UnmarshalSealed(raw)
	if err != nil {
		return "", err
	}
	plaintext, err := c.engine.Decrypt(sealed)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// PutDocument seals doc.Content before delegating to the embedded store.
// The caller's Document is not mutated; a sealed copy is persisted instead.
func (c *cryptoStore) PutDocument(ctx context.Context, doc *store.Document, chunks []*store.Chunk) error {
	sealed, err := c.seal(doc.Content)
	if err != nil {
		return err
	}
	persisted := *doc
	persisted.Content = sealed
	return c.SQLiteStore.PutDocument(ctx, &persisted, chunks)
}

// GetDocument opens the persisted document's sealed content before
// returning it.
func (c *cryptoStore) GetDocument(ctx context.Context, id string) (*store.Document, error) {
	doc, err := c.SQLiteStore.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.decryptDoc(doc)
}

func (c *cryptoStore) GetDocumentByPath(ctx context.Context, path string) (*store.Document, error) {
	doc, err := c.SQLiteStore.GetDocumentByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	return c.decryptDoc(doc)
}

func (c *cryptoStore) ListDocuments(ctx context.Context, limit, offset int) ([]*store.Document, error) {
	docs, err := c.SQLiteStore.ListDocuments(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*store.Document, 0, len(docs))
	for _, doc := range docs {
		dec, err := c.decryptDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, dec)
	}
	return out, nil
}

func (c *cryptoStore) decryptDoc(doc *store.Document) (*store.Document, error) {
	plaintext, err := c.open(doc.Content)
	if err != nil {
		return nil, err
	}
	out := *doc
	out.Content = plaintext
	return &out, nil
}
