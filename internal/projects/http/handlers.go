package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/projects-catalog/internal/attachments"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/auth"
	"github.com/GoSim-25-26J-441/projects-catalog/internal/projects/domain"
)

const (
	fieldProjectData = "project_data"
	fieldImage       = "image"

	maxJSONBodyBytes = 1 << 20
)

func (h *Handler) create(c *gin.Context) {
	payload, upload, err := h.readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.CallerID(c), payload, upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) list(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := h.svc.List(c.Request.Context(), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c *gin.Context) {
	payload, upload, err := h.readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.CallerID(c), c.Param("id"), payload, upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.CallerID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) replaceImage(c *gin.Context) {
	upload, err := h.readUpload(c)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.svc.ReplaceImage(c.Request.Context(), auth.CallerID(c), c.Param("id"), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) removeImage(c *gin.Context) {
	p, err := h.svc.RemoveImage(c.Request.Context(), auth.CallerID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// readBody accepts multipart or urlencoded forms carrying project_data and an
// optional image, or a bare JSON body.
func (h *Handler) readBody(c *gin.Context) ([]byte, *attachments.Upload, error) {
	if c.ContentType() == gin.MIMEJSON {
		body := http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodyBytes)
		payload, err := io.ReadAll(body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, fmt.Errorf("%w: request body exceeds %d bytes", attachments.ErrTooLarge, tooLarge.Limit)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: read body: %v", domain.ErrMalformedInput, err)
		}
		return payload, nil, nil
	}

	payload := c.PostForm(fieldProjectData)
	upload, err := h.readUpload(c)
	if err != nil {
		return nil, nil, err
	}
	return []byte(payload), upload, nil
}

// readUpload returns nil when no image part was sent. At most maxBytes+1
// bytes are buffered; the declared size still reaches the validator.
func (h *Handler) readUpload(c *gin.Context) (*attachments.Upload, error) {
	fh, err := c.FormFile(fieldImage)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return &attachments.Upload{
		Data:        data,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Filename:    fh.Filename,
	}, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrMalformedInput, key)
	}
	return n, nil
}
