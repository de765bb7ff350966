package models

// AttachmentKind is the closed set of file kinds a title can carry.
type AttachmentKind string

const (
	KindPoster         AttachmentKind = "POSTER"
	KindTechnicalSheet AttachmentKind = "TECHNICAL_SHEET"
)

// Valid reports whether k is a known attachment kind.
func (k AttachmentKind) Valid() bool {
	return k == KindPoster || k == KindTechnicalSheet
}

// Attachment is the metadata record for one binary object in the blob store.
// Rows are immutable after creation; replace is modeled as delete-then-create.
type Attachment struct {
	ID           string         `json:"id"`
	MediaTitleID string         `json:"media_title_id"`
	Kind         AttachmentKind `json:"kind"`
	StorageKey   string         `json:"storage_key"`
	BlobURL      string         `json:"blob_url,omitempty"`
	IntegrityTag string         `json:"integrity_tag,omitempty"`
	ContentType  string         `json:"content_type,omitempty"`
	SizeBytes    int64          `json:"size_bytes"`
	UploadedAt   string         `json:"uploaded_at"`
	UploadedBy   string         `json:"uploaded_by,omitempty"`
}
