// Package store implements the Store Facade: persistence for documents,
// chunks, entities, relationships, and file events over a single embedded
// modernc.org/sqlite database per watched root.
package store

import "time"

// EntityKind is the closed set of entity kinds the extractor recognizes,
// plus an open CUSTOM variant carrying its own name.
type EntityKind string

const (
	EntityPerson       EntityKind = "PERSON"
	EntityOrganization EntityKind = "ORGANIZATION"
	EntityLocation     EntityKind = "LOCATION"
	EntityEmail        EntityKind = "EMAIL"
	EntityPhone        EntityKind = "PHONE"
	EntityURL          EntityKind = "URL"
	EntityDate         EntityKind = "DATE"
	EntityTime         EntityKind = "TIME"
	EntityMoney        EntityKind = "MONEY"
	EntityIPAddress    EntityKind = "IP_ADDRESS"
	EntityFilePath     EntityKind = "FILE_PATH"
	EntitySSN          EntityKind = "SSN"
	EntityCreditCard   EntityKind = "CREDIT_CARD"
	EntityCustom       EntityKind = "CUSTOM"
)

// FileEventKind is the normalized watcher event taxonomy.
type FileEventKind string

const (
	FileEventCreated  FileEventKind = "CREATED"
	FileEventModified FileEventKind = "MODIFIED"
	FileEventDeleted  FileEventKind = "DELETED"
	FileEventRenamed  FileEventKind = "RENAMED"
)

// Document is a single ingested file: its normalized content plus enough
// provenance to detect re-ingestion of unchanged bytes.
type Document struct {
	ID          string
	SourcePath  string
	MimeKind    string
	IngestedAt  time.Time
	ModifiedAt  time.Time
	Checksum    string // SHA-256 of normalized content, hex-encoded
	Title       string
	Content     string
	WordCount   int
	CharCount   int
	PageCount   int
	Encoding    string
	IngestSeq   int64 // monotonic ingestion clock, assigned by the store
}

// Chunk is a contiguous, half-open character span of a Document's content.
type Chunk struct {
	ID         string
	DocumentID string
	Ordinal    int
	SpanStart  int
	SpanEnd    int
	Content    string
}

// Entity is a single extracted mention, owned by exactly one Document.
type Entity struct {
	ID          string
	DocumentID  string
	Kind        EntityKind
	CustomKind  string // populated only when Kind == EntityCustom
	SurfaceForm string
	Confidence  float64
	SpanStart   int
	SpanEnd     int
	Properties  map[string]string
}

// Relationship is a directed, typed edge between two Entities.
type Relationship struct {
	ID             string
	SourceEntityID string
	TargetEntityID string
	Label          string
	Strength       float64
	Confidence     float64
	CreatedAt      time.Time
	Metadata       map[string]string
}

// FileEvent is a logged, normalized watcher observation.
type FileEvent struct {
	ID         int64
	Kind       FileEventKind
	Path       string
	OccurredAt time.Time
	Metadata   map[string]string
}

// MatchResult is one hit from a full-text query against fts_content.
type MatchResult struct {
	DocumentID string
	Snippet    string
	Rank       float64
}
