package handlers

import (
	"net/http"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api/middleware"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxWorkbookBytes caps the size of an uploaded workbook
const maxWorkbookBytes = 10 << 20

type ImportHandler struct {
	service *service.NetworkService
}

func NewImportHandler(service *service.NetworkService) *ImportHandler {
	return &ImportHandler{service: service}
}

// DownloadTemplate streams the example workbook
func (h *ImportHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+importer.TemplateFileName+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := importer.WriteTemplate(c.Writer); err != nil {
		log.Error().Err(err).Msg("failed to write import template")
	}
}

// ImportWorkbook creates a company from an uploaded workbook in the "file" field
func (h *ImportHandler) ImportWorkbook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWorkbookBytes)

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "no file provided", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, "could not read uploaded file", err)
		return
	}
	defer file.Close()

	company, err := h.service.ImportWorkbook(c.Request.Context(), file)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":   "Failed to parse Excel file. Please check the format.",
			"details": err.Error(),
		})
		return
	}

	log.Info().Str("company_id", company.ID).Str("filename", header.Filename).Msg("workbook imported")
	c.JSON(http.StatusCreated, visible(middleware.Session(c), company))
}
