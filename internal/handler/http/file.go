package http

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nexter-rh/nexter-backend-go/internal/domain/company"
	"github.com/nexter-rh/nexter-backend-go/internal/handler/http/response"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/storage"
)

type FileHandler interface {
	Download(w http.ResponseWriter, r *http.Request)
}

type fileHandlerImpl struct {
	files storage.FileStorage
}

func NewFileHandler(files storage.FileStorage) FileHandler {
	return &fileHandlerImpl{files: files}
}

// Download streams a stored file. Keys are laid out as
// <folder>/<companyID>/<name>, the company segment gates access.
func (h *fileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		response.HandleError(w, storage.ErrInvalidPath)
		return
	}

	if !jwt.OperatorFromContext(r.Context()).CanAccess(parts[1]) {
		response.HandleError(w, company.ErrCompanyAccessDenied)
		return
	}

	rc, err := h.files.Download(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Warn("Failed to stream file", "key", key, "error", err)
	}
}
