package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"callsight/internal/domain"
	"callsight/internal/xlsxexport"
)

// ExportHandler renders analysis records as downloadable spreadsheets.
// Nothing is persisted server-side, so the client posts back the record it
// received from the analyze endpoint.
type ExportHandler struct{}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportRequest is the body of an export request.
type exportRequest struct {
	Mode   domain.AnalysisMode   `json:"mode"`
	Record domain.AnalysisRecord `json:"record" binding:"required"`
}

// Export handles POST /api/v1/analyses/export
// @Summary Export an analysis record as XLSX
// @Tags analyses
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param body body exportRequest true "Record returned by the analyze endpoint"
// @Success 200 {file} binary "Spreadsheet"
// @Failure 400 {object} APIResponse "Invalid body"
// @Router /analyses/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "body must contain an analysis record")
		return
	}

	w := xlsxexport.NewWriter()
	if err := w.WriteRecord(&req.Record, req.Mode); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("analysis-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if _, err := w.WriteTo(c.Writer); err != nil {
		requestID, _ := c.Get("request_id")
		// Headers are already written; nothing left to do but log.
		log.Printf("[%v] export write failed: %v", requestID, err)
	}
}
