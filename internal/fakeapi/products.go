package fakeapi

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
)

const maxMultipartMemory = 32 << 20

func (h *handlers) listProducts(c *gin.Context) {
	list, err := h.backend.Products.List(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handlers) createProduct(c *gin.Context) {
	payload, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	saved, err := h.backend.Products.Create(c.Request.Context(), payload)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	payload, ok := h.bindProductForm(c)
	if !ok {
		return
	}
	saved, err := h.backend.Products.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.backend.Products.Delete(c.Request.Context(), id); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindProductForm reads the multipart product body: scalar fields, an
// options JSON array, a thumbnail file and repeated detailImages files.
func (h *handlers) bindProductForm(c *gin.Context) (domain.Payload, bool) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.responder.BadRequest(c, "expected multipart/form-data body")
		return domain.Payload{}, false
	}
	form := c.Request.MultipartForm
	p := domain.Payload{
		ProductName: strings.TrimSpace(c.PostForm("productName")),
		Continent:   c.PostForm("continent"),
		Nationality: c.PostForm("nationality"),
		Type:        c.PostForm("type"),
	}
	if raw := strings.TrimSpace(c.PostForm("basePrice")); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			h.responder.BadRequest(c, "basePrice must be an integer")
			return domain.Payload{}, false
		}
		p.BasePrice = price
	}
	if raw := c.PostForm("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Options); err != nil {
			h.responder.BadRequest(c, "options must be a JSON array")
			return domain.Payload{}, false
		}
	}
	if err := h.validate.Struct(p); err != nil {
		h.responder.RespondError(c, err)
		return domain.Payload{}, false
	}
	if files := form.File["thumbnail"]; len(files) > 0 {
		up := fileUpload(files[0])
		p.Thumbnail = &up
	}
	for _, fh := range form.File["detailImages"] {
		p.DetailImages = append(p.DetailImages, fileUpload(fh))
	}
	return p, true
}

func fileUpload(fh *multipart.FileHeader) domain.Upload {
	return domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func(context.Context) (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
