// Package model defines the database records persisted by usergate.
package model

// RoleAdmin is the only role value that grants elevated rights; the
// comparison is case-insensitive and every other value is non-admin.
const RoleAdmin = "admin"

// User is an identity record. Username is immutable after creation and
// compared case-sensitively. PasswordHash always holds bcrypt output, never a
// raw password.
type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         string `json:"role" gorm:"not null"`
}
