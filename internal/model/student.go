package model

// Student 学生（WhatsApp 联系人）
type Student struct {
	WhatsappID string `gorm:"primaryKey;size:255" json:"whatsapp_id"`
	Name       string `gorm:"size:255" json:"name"`
	ClientID   string `gorm:"index;size:36" json:"client_id"`
}

// TableName 指定表名
func (Student) TableName() string {
	return "students"
}
