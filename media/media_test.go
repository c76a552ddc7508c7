package media

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/camden-git/policeportal/models"
)

type recordingStore struct {
	Store
	deleted []string
	failOn  map[string]bool
}

func (s *recordingStore) Delete(relativePath string) error {
	s.deleted = append(s.deleted, relativePath)
	if s.failOn[relativePath] {
		return errors.New("disk unavailable")
	}
	return nil
}

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir(), map[AssetType]string{
		AssetTypeEvidence: "evidence",
		AssetTypeDocument: "personnel-documents",
	}, zap.NewNop())
	require.NoError(t, err)
	return ls
}

func uploads(t *testing.T, files map[string][]byte, order []string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range order {
		fw, err := mw.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = fw.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files[]"]
}

func TestLocalStorageSaveGetDelete(t *testing.T) {
	ls := newTestStorage(t)

	path, err := ls.Save(AssetTypeEvidence, "a.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "evidence/a.txt", path)

	rc, info, err := ls.Get(path)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello", string(data))
	assert.EqualValues(t, 5, info.Size())

	require.NoError(t, ls.Delete(path))
	_, _, err = ls.Get(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// already gone
	assert.NoError(t, ls.Delete(path))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ls := newTestStorage(t)

	_, err := ls.GetFullPath("../outside.txt")
	assert.Error(t, err)
	_, err = ls.GetFullPath("evidence/../../etc/passwd")
	assert.Error(t, err)
	_, err = ls.Save(AssetTypeEvidence, "../x.txt", strings.NewReader("x"))
	assert.Error(t, err)
	_, err = ls.Save(AssetType("unknown"), "x.txt", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewLocalStorageRejectsEscapingSubDir(t *testing.T) {
	_, err := NewLocalStorage(t.TempDir(), map[AssetType]string{AssetTypeEvidence: "../elsewhere"}, zap.NewNop())
	assert.Error(t, err)
}

func TestStoreUploads(t *testing.T) {
	ls := newTestStorage(t)
	a := NewAttachments(ls, AssetTypeEvidence, zap.NewNop())

	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 64)...)
	files := uploads(t, map[string][]byte{
		"Report.PDF": pdf,
		"notes.txt":  []byte("plain notes"),
	}, []string{"Report.PDF", "notes.txt"})

	got, err := a.StoreUploads(files)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Report.PDF", got[0].Name)
	assert.True(t, strings.HasPrefix(got[0].Path, "evidence/"))
	assert.True(t, strings.HasSuffix(got[0].Path, ".pdf"))
	assert.EqualValues(t, len(pdf), got[0].Size)
	assert.Equal(t, "application/pdf", got[0].Type)

	assert.Equal(t, "notes.txt", got[1].Name)
	assert.Equal(t, "text/plain", got[1].Type)

	full, err := ls.GetFullPath(got[1].Path)
	require.NoError(t, err)
	content, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "plain notes", string(content))
	assert.Equal(t, filepath.Join(ls.basePath, "evidence"), filepath.Dir(full))
}

func TestAppendAttachmentsKeepsOrder(t *testing.T) {
	existing := []models.Attachment{{Name: "a", Path: "evidence/a"}, {Name: "b", Path: "evidence/b"}}
	added := []models.Attachment{{Name: "c", Path: "evidence/c"}, {Name: "d", Path: "evidence/d"}}

	got := AppendAttachments(existing, added)
	require.Len(t, got, 4)
	for i, want := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, want, got[i].Name)
	}
	assert.Len(t, existing, 2)

	assert.NotNil(t, AppendAttachments(nil, nil))
}

func TestRemoveIsBestEffort(t *testing.T) {
	store := &recordingStore{failOn: map[string]bool{"evidence/b": true}}
	a := NewAttachments(store, AssetTypeEvidence, zap.NewNop())

	failed := a.Remove([]models.Attachment{
		{Path: "evidence/a"}, {Path: "evidence/b"}, {Path: "evidence/c"},
	})

	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"evidence/a", "evidence/b", "evidence/c"}, store.deleted)
}
