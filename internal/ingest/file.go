package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/docmind/docmind/internal/entity"
	"github.com/docmind/docmind/internal/store"
	"github.com/docmind/docmind/internal/xerrors"
)

// IngestFile runs the full validate/checksum/decode/chunk/extract/persist
// pipeline for a single file.
func (p *Pipeline) IngestFile(ctx context.Context, path string) Outcome {
	outcome := p.ingestFile(ctx, path)
	if outcome.Kind == OutcomeError {
		p.notifyError(outcome.Path, outcome.ErrorCode, outcome.ErrorMessage)
	} else if outcome.Kind == OutcomeIngested {
		p.notifyProcessed(outcome.Document)
	}
	return outcome
}

func (p *Pipeline) ingestFile(ctx context.Context, path string) Outcome {
	// Step 1: validate.
	info, err := os.Lstat(path)
	if err != nil {
		return errorOutcome(path, xerrors.ErrCodeFSNotFound, err.Error())
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return errorOutcome(path, xerrors.ErrCodeFSNotFound, "refusing to ingest a symlink")
	}
	if !info.Mode().IsRegular() {
		return errorOutcome(path, xerrors.ErrCodeFSNotFound, "not a regular file")
	}
	if info.Size() > p.cfg.MaxFileSize {
		return errorOutcome(path, xerrors.ErrCodeFSTooLarge, fmt.Sprintf("file size %d exceeds max %d", info.Size(), p.cfg.MaxFileSize))
	}
	if !extensionSupported(path, p.cfg.SupportedExtensions) {
		return errorOutcome(path, xerrors.ErrCodeDecodeUnsupported, "unsupported file extension")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errorOutcome(path, xerrors.ErrCodeFSNotFound, err.Error())
	}

	// Step 2: checksum and unchanged-reingestion short circuit.
	checksum := sha256Hex(raw)
	documentID := documentIDFor(path, checksum)

	existing, err := p.cfg.Store.GetDocumentByPath(ctx, path)
	hasExisting := err == nil
	if hasExisting && existing.Checksum == checksum {
		return Outcome{Path: path, Kind: OutcomeUnchanged, Document: existing}
	}

	// Step 3: decode.
	rawDoc, err := p.cfg.Decoders.Decode(path, raw)
	if err != nil {
		return errorOutcome(path, xerrors.Code(err), err.Error())
	}

	// Step 4: chunk and extract entities.
	spans, err := p.cfg.Chunker.Chunk(rawDoc.Plaintext)
	if err != nil {
		return errorOutcome(path, xerrors.ErrCodeDecodeError, err.Error())
	}
	var candidates []entity.Candidate
	if p.cfg.ExtractEntities {
		candidates, err = p.cfg.Extractor.Extract(rawDoc.Plaintext)
		if err != nil {
			return errorOutcome(path, xerrors.ErrCodeExtractRegex, err.Error())
		}
	}

	now := time.Now()
	doc := &store.Document{
		ID:         documentID,
		SourcePath: path,
		MimeKind:   mimeKindFor(rawDoc.FormatMetadata["format"]),
		IngestedAt: now,
		ModifiedAt: info.ModTime(),
		Checksum:   checksum,
		Title:      rawDoc.Title,
		Content:    rawDoc.Plaintext,
		WordCount:  len(strings.Fields(rawDoc.Plaintext)),
		CharCount:  utf8.RuneCountInString(rawDoc.Plaintext),
		PageCount:  0,
		Encoding:   "utf-8",
	}

	chunks := make([]*store.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = &store.Chunk{
			ID:         chunkID(documentID, span.Ordinal),
			DocumentID: documentID,
			Ordinal:    span.Ordinal,
			SpanStart:  span.SpanStart,
			SpanEnd:    span.SpanEnd,
			Content:    span.Content,
		}
	}

	// Step 5: persist.
	if hasExisting && existing.Checksum != checksum {
		if err := p.cfg.Store.DeleteDocument(ctx, existing.ID); err != nil {
			return errorOutcome(path, xerrors.ErrCodeStoreIO, err.Error())
		}
		p.cfg.Index.Unindex(existing.ID)
	}

	if err := p.cfg.Store.PutDocument(ctx, doc, chunks); err != nil {
		return errorOutcome(path, xerrors.ErrCodeStoreIO, err.Error())
	}

	entities := make([]*store.Entity, 0, len(candidates))
	for _, cand := range candidates {
		e := &store.Entity{
			ID:          entityID(documentID, cand.SpanStart, cand.SpanEnd),
			DocumentID:  documentID,
			Kind:        cand.Kind,
			CustomKind:  cand.CustomKind,
			SurfaceForm: cand.SurfaceForm,
			Confidence:  cand.Confidence,
			SpanStart:   cand.SpanStart,
			SpanEnd:     cand.SpanEnd,
			Properties:  cand.Properties,
		}
		if err := p.cfg.Store.PutEntity(ctx, e); err != nil {
			return errorOutcome(path, xerrors.ErrCodeStoreIO, err.Error())
		}
		entities = append(entities, e)
	}

	if p.cfg.ExtractRelationships {
		for _, rel := range coOccurrenceRelationships(entities, now) {
			if err := p.cfg.Store.PutRelationship(ctx, rel); err != nil {
				return errorOutcome(path, xerrors.ErrCodeStoreIO, err.Error())
			}
		}
	}

	p.cfg.Index.IndexDocument(documentID, rawDoc.Plaintext)

	return Outcome{Path: path, Kind: OutcomeIngested, Document: doc}
}

func extensionSupported(path string, supported []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supported {
		if ext == s {
			return true
		}
	}
	return false
}

func mimeKindFor(format string) string {
	switch format {
	case "markdown":
		return "text/markdown"
	default:
		return "text/plain"
	}
}

func sha256Hex(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// documentIDFor derives a document id from both path and content checksum,
// so a content change yields a fresh id rather than reusing the old
// document's. The old row is deleted by its (old) id below, and the new
// content is inserted under this new one.
func documentIDFor(path, checksum string) string {
	sum := sha256.Sum256([]byte(path + ":" + checksum))
	return hex.EncodeToString(sum[:])[:32]
}

func chunkID(documentID string, ordinal int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", documentID, ordinal)))
	return hex.EncodeToString(sum[:])[:32]
}

const coOccursLabel = "co_occurs"

// relationshipID is content-addressed like chunkID/entityID above, so
// re-ingesting an unchanged document reproduces the same relationship ids
// instead of accumulating duplicates. a and b must already be in canonical
// (sorted) order.
func relationshipID(a, b, label string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", a, b, label)))
	return hex.EncodeToString(sum[:])[:32]
}

// coOccurrenceRelationships derives one co_occurs Relationship per distinct
// pair of entities found in the same document. The pair is canonicalized
// (lower id first) so the graph store's undirected BFS sees a single edge
// per pair rather than two redundant directed ones. Confidence is the
// average of the two entities' extraction confidence; strength is fixed,
// since nothing about proximity or frequency is tracked here.
func coOccurrenceRelationships(entities []*store.Entity, at time.Time) []*store.Relationship {
	var rels []*store.Relationship
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := entities[i], entities[j]
			if a.ID == b.ID {
				continue
			}
			src, dst := a, b
			if dst.ID < src.ID {
				src, dst = dst, src
			}
			rels = append(rels, &store.Relationship{
				ID:             relationshipID(src.ID, dst.ID, coOccursLabel),
				SourceEntityID: src.ID,
				TargetEntityID: dst.ID,
				Label:          coOccursLabel,
				Strength:       0.5,
				Confidence:     (src.Confidence + dst.Confidence) / 2,
				CreatedAt:      at,
				Metadata:       map[string]string{},
			})
		}
	}
	return rels
}

func entityID(documentID string, spanStart, spanEnd int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%d", documentID, spanStart, spanEnd)))
	return hex.EncodeToString(sum[:])[:32]
}
