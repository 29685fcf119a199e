package model

import "time"

// AiLog AI 助手的一次问答记录，只追加，不修改不删除
type AiLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
	Username  string    `gorm:"size:100;index;not null" json:"user"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AiLog) TableName() string {
	return "ai_logs"
}
