package model

import "time"

// Attachment — метаданные файла сотрудника.
// EmployeeID не связан внешним ключом: после удаления сотрудника вложения остаются.
type Attachment struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	EmployeeID string `gorm:"size:20;not null;index" json:"employeeId"`

	FileName     string `gorm:"not null" json:"filename"`
	OriginalName string `gorm:"not null" json:"originalName"`
	Size         int64  `gorm:"not null" json:"size"`
	MimeType     string `gorm:"not null" json:"mimeType"`

	BlobID string `gorm:"type:uuid;not null;index" json:"-"`

	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`
}
