// notes/sources/psql/models/note.go
package models

// Note has no TableName method so the naming strategy can place it in the
// configured schema.
type Note struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Text      string `json:"text" gorm:"type:varchar(255);not null"`
	Completed bool   `json:"completed" gorm:"not null"`
}
