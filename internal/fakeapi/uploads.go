package fakeapi

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// serveUpload streams a stored image back under /uploads/<key>.
func (h *handlers) serveUpload(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" || strings.Contains(key, "..") {
		h.responder.BadRequest(c, "invalid upload path")
		return
	}
	rc, err := h.backend.Uploads.Open(c.Request.Context(), key)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}
