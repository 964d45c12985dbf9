package model

import "time"

// swagger:model Child
type Child struct {
	UUIDBase
	Name        string     `gorm:"size:100;not null" json:"name"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	ParentID    uint       `gorm:"index;type:bigint unsigned;not null" json:"parentId"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

func (Child) TableName() string {
	return "children"
}
