package models

// Attachment describes one stored file owned by a Case (evidence) or a
// Personnel record (documents). Path is relative to the storage root.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}
