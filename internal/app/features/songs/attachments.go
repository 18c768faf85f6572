// internal/app/features/songs/attachments.go
package songs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/congregate/internal/app/system/apierr"
	"github.com/dalemusser/congregate/internal/app/system/attachments"
	"github.com/dalemusser/congregate/internal/app/system/httpjson"
	"github.com/dalemusser/congregate/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type uploadSignatureRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type signatureResponse struct {
	SignedURL string `json:"signedUrl"`
	Key       string `json:"key,omitempty"`
}

type fileRequest struct {
	FileName string `json:"fileName"`
}

// storageReady refuses attachment requests when no bucket was
// configured at startup.
func (h *Handler) storageReady(w http.ResponseWriter) bool {
	if h.Attachments == nil {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Dependency, "attachment storage is not configured"))
		return false
	}
	return true
}

// HandleUploadSignature handles POST /songs/{id}/attachment-upload-signature.
// A missing field or a fileType outside the allow-list is refused with
// a 401, the same class as the other attachment authorization failures.
func (h *Handler) HandleUploadSignature(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req uploadSignatureRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.FileName) == "" || strings.TrimSpace(req.FileType) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "fileName and fileType fields are required"))
		return
	}
	if !attachments.AllowedType(req.FileType) {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "file type is not supported"))
		return
	}
	if !h.storageReady(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	url, key, err := h.Attachments.UploadURL(ctx, id.Hex(), req.FileName, req.FileType)
	if err != nil {
		if errors.Is(err, attachments.ErrUnsupportedType) {
			httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "file type is not supported"))
			return
		}
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not sign upload", err))
		return
	}

	h.Log.Info("attachment upload signed",
		zap.String("song_id", id.Hex()),
		zap.String("key", key))
	httpjson.Write(w, http.StatusOK, signatureResponse{SignedURL: url, Key: key})
}

// ServeAttachmentList handles GET /songs/{id}/attachment-list.
func (h *Handler) ServeAttachmentList(w http.ResponseWriter, r *http.Request) {
	if !h.storageReady(w) {
		return
	}
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.Attachments.List(ctx, id.Hex())
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not list attachments", err))
		return
	}
	httpjson.Write(w, http.StatusOK, names)
}

// HandleDownloadSignature handles POST /songs/{id}/attachment-download-signature.
func (h *Handler) HandleDownloadSignature(w http.ResponseWriter, r *http.Request) {
	if !h.storageReady(w) {
		return
	}
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req fileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "fileName field is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	url, err := h.Attachments.DownloadURL(ctx, id.Hex(), req.FileName)
	if err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not sign download", err))
		return
	}
	httpjson.Write(w, http.StatusOK, signatureResponse{SignedURL: url})
}

// HandleDeleteAttachment handles DELETE /songs/{id}/attachment.
func (h *Handler) HandleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	if !h.storageReady(w) {
		return
	}
	id, err := httpjson.ParamID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	var req fileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		httpjson.WriteError(w, h.Log, apierr.New(apierr.Auth, "fileName field is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Attachments.Delete(ctx, id.Hex(), req.FileName); err != nil {
		httpjson.WriteError(w, h.Log, apierr.Wrap(apierr.Dependency, "could not delete attachment", err))
		return
	}

	h.Log.Info("attachment deleted",
		zap.String("song_id", id.Hex()),
		zap.String("file", req.FileName))
	httpjson.Write(w, http.StatusOK, map[string]string{"message": "attachment deleted"})
}
