package server

import (
	"errors"
	"net/http"

	"github.com/alkime/jailu/internal/ingest"
	"github.com/alkime/jailu/internal/locale"
	"github.com/gin-gonic/gin"
)

// maxUploadMemory bounds the multipart form held in memory; larger parts
// spill to temporary files.
const maxUploadMemory = 1 << 20

func (s *Server) handleIngest(c *gin.Context) {
	lang := locale.LookupOrDefault(c.Query("lang"))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ingest.MaxFileSize+maxUploadMemory)
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		s.logger.Info("Rejected upload", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(c, http.StatusRequestEntityTooLarge, lang.Messages().FileTooLarge("upload"))
			return
		}
		errorResponse(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "missing file field")
		return
	}

	result := ingest.NewFunnel(lang, s.logger).Ingest(c.Request.Context(), ingest.FromMultipart(fh))
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
