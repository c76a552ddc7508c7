package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/camden-git/policeportal/media"
)

// AssetServer serves stored attachments by their descriptor path. It is
// mounted on a wildcard route, e.g.
//
//	r.Get("/storage/*", AssetServer(store, log))
func AssetServer(store media.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := chi.URLParam(r, "*")
		if relativePath == "" || strings.Contains(relativePath, "..") {
			WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid asset path")
			return
		}

		file, info, err := store.Get(relativePath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				WriteAPIError(w, http.StatusNotFound, "not_found", "File not found")
				return
			}
			log.Warn("asset access refused", zap.String("path", relativePath), zap.Error(err))
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Forbidden")
			return
		}
		defer file.Close()

		cacheDuration := time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if rs, ok := file.(io.ReadSeeker); ok {
			http.ServeContent(w, r, info.Name(), info.ModTime(), rs)
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "File cannot be served")
	}
}
