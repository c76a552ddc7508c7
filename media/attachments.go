package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/camden-git/policeportal/models"
)

// DetectMIME sniffs the content type of r, without parameters such as charset.
func DetectMIME(r io.Reader) (*mimetype.MIME, string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, "", err
	}
	base, _, _ := strings.Cut(mt.String(), ";")
	return mt, strings.TrimSpace(base), nil
}

// Attachments stores uploaded files for one asset type and maintains the
// descriptor lists that reference them.
type Attachments struct {
	store     Store
	assetType AssetType
	log       *zap.Logger
}

func NewAttachments(store Store, assetType AssetType, log *zap.Logger) *Attachments {
	return &Attachments{store: store, assetType: assetType, log: log.Named("media.attachments")}
}

// StoreUploads saves each file under a generated name and returns the
// descriptors in upload order. Files saved before a failure stay on disk.
func (a *Attachments) StoreUploads(files []*multipart.FileHeader) ([]models.Attachment, error) {
	out := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		att, err := a.storeOne(fh)
		if err != nil {
			return out, err
		}
		out = append(out, att)
	}
	return out, nil
}

func (a *Attachments) storeOne(fh *multipart.FileHeader) (models.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to open upload '%s': %w", fh.Filename, err)
	}
	defer f.Close()

	_, mimeType, err := DetectMIME(f)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to detect type of '%s': %w", fh.Filename, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return models.Attachment{}, fmt.Errorf("failed to rewind upload '%s': %w", fh.Filename, err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	path, err := a.store.Save(a.assetType, name, f)
	if err != nil {
		return models.Attachment{}, err
	}

	return models.Attachment{
		Name: fh.Filename,
		Path: path,
		Size: fh.Size,
		Type: mimeType,
	}, nil
}

// Remove asks the store to delete every attached file. Failures are logged
// and skipped; the number of failed deletions is returned.
func (a *Attachments) Remove(list []models.Attachment) int {
	failed := 0
	for _, att := range list {
		if err := a.store.Delete(att.Path); err != nil {
			failed++
			a.log.Warn("failed to delete attachment", zap.String("path", att.Path), zap.Error(err))
		}
	}
	return failed
}

// AppendAttachments returns existing followed by added. Neither input is
// modified and the result is never nil.
func AppendAttachments(existing, added []models.Attachment) []models.Attachment {
	out := make([]models.Attachment, 0, len(existing)+len(added))
	out = append(out, existing...)
	return append(out, added...)
}
