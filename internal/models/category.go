package models

// Category is a global expense label shared by all users.
type Category struct {
	Base
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}
