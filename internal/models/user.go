package models

import "time"

// User is a field counter, identified only by display name
type User struct {
	ID   string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name string `gorm:"column:nome;uniqueIndex;not null" json:"nome"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "usuarios"
}
