package media

type AssetType string

const (
	AssetTypeEvidence AssetType = "evidence" // case evidence files
	AssetTypeDocument AssetType = "document" // personnel documents
)

// MaxUploadSize is the largest attachment accepted, in bytes.
const MaxUploadSize int64 = 10 * 1024 * 1024

// AllowedExtensions are the attachment kinds accepted for upload.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png", ".txt"}
