package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Статусы сотрудника.
const (
	StatusActive   = "active"
	StatusOnLeave  = "on_leave"
	StatusInactive = "inactive"
)

// Employee — запись сотрудника.
// ID назначается хранилищем, EmployeeID — бизнес-идентификатор вида EMP###.
type Employee struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	EmployeeID string `gorm:"size:20;not null;uniqueIndex:idx_employee_id_unique" json:"employee_id"`

	Name       string     `gorm:"size:100;not null" json:"name"`
	Age        int        `gorm:"not null" json:"age"`
	Department string     `gorm:"size:50;not null;index:idx_department" json:"department"`
	Salary     *int       `json:"salary"`
	HireDate   *string    `gorm:"size:10" json:"hire_date"`
	Status     string     `gorm:"size:16;not null;default:active" json:"status"`
	Skills     StringList `gorm:"type:text" json:"skills"`

	CreatedAt time.Time `gorm:"not null;index:idx_created_at_desc,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// StringList хранит список строк одной JSON-колонкой.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("StringList: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*l = out
	return nil
}
