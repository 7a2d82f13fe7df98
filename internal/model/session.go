package model

import "time"

// Session is the server-side state behind a session cookie.
type Session struct {
	SID    string    `gorm:"column:sid;primaryKey;size:64"`
	Sess   JSON      `gorm:"column:sess;not null"`
	Expire time.Time `gorm:"column:expire;not null;index:IDX_session_expire"`
}

// TableName pins the table name used by the session store.
func (Session) TableName() string { return "sessions" }

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&MenuCategory{},
		&MenuItem{},
		&Event{},
		&Reservation{},
		&Setting{},
		&Upload{},
		&AuditLog{},
		&Session{},
	}
}
