package model

// Attachment field names. They never appear in the JSON payload.
const (
	AttachmentPhoto     = "photo"
	AttachmentSignature = "signature"
)

// File describes a picked file. Only metadata is retained; contents are not
// read because nothing transmits them.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size"`
}

// Attachments keeps the photo and signature selections in separate slots.
type Attachments struct {
	Photo     *File `json:"photo,omitempty"`
	Signature *File `json:"signature,omitempty"`
}

// IsEmpty reports whether no file has been picked.
func (a Attachments) IsEmpty() bool {
	return a.Photo == nil && a.Signature == nil
}

// Clone returns a deep copy so snapshots do not alias store state.
func (a Attachments) Clone() Attachments {
	var out Attachments
	if a.Photo != nil {
		photo := *a.Photo
		out.Photo = &photo
	}
	if a.Signature != nil {
		signature := *a.Signature
		out.Signature = &signature
	}
	return out
}
