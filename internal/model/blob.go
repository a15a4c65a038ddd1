package model

import "time"

// Blob — бинарное содержимое вложения. Метаданные живут отдельно в Attachment.
type Blob struct {
	ID string `gorm:"primaryKey;type:uuid"`

	Data []byte `gorm:"not null"`
	Size int64  `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
