package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TagList 标签列表
// 关系表中以逗号连接存为单列，因此标签值本身不允许包含逗号
type TagList []string

// Value 实现 driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	return strings.Join(t, ","), nil
}

// Scan 实现 sql.Scanner
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TagList", value)
	}

	*t = nil
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*t = append(*t, part)
		}
	}
	return nil
}

// Contains 是否包含某个标签
func (t TagList) Contains(tag string) bool {
	for _, v := range t {
		if v == tag {
			return true
		}
	}
	return false
}

// Upload 一份已上传的学习资料的元数据
// filename 在整个存储中唯一，同时也是对象存储里的 key
type Upload struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
	UploadedBy string    `gorm:"column:uploaded_by;size:100;index;not null" json:"uploaded_by"`
	Filename   string    `gorm:"size:255;uniqueIndex;not null" json:"filename"`
	URL        string    `gorm:"size:500;not null" json:"url"`
	Tags       TagList   `gorm:"type:text" json:"tags"`
	Summary    *string   `gorm:"type:text" json:"summary"`
	UploadedAt time.Time `gorm:"column:uploaded_at;index" json:"uploaded_on"`
}

// TableName 指定表名
func (Upload) TableName() string {
	return "uploads"
}
