// notes/sources/psql/dao/dao.note.go
package dao

import (
	"context"
	"errors"

	"notes/notes/sources/psql/models"

	"gorm.io/gorm"
)

type NoteDAO struct {
	DB *gorm.DB
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{DB: db}
}

// Transaction runs fn against a DAO bound to a single transaction. The
// transaction commits when fn returns nil and rolls back on error or panic.
func (dao *NoteDAO) Transaction(ctx context.Context, fn func(tx *NoteDAO) error) error {
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&NoteDAO{DB: tx})
	})
}

// CreateNote inserts note and fills in the generated ID.
func (dao *NoteDAO) CreateNote(ctx context.Context, note *models.Note) error {
	return dao.DB.WithContext(ctx).Create(note).Error
}

// GetNoteByID returns nil, nil when no row matches.
func (dao *NoteDAO) GetNoteByID(ctx context.Context, id int64) (*models.Note, error) {
	var note models.Note
	err := dao.DB.WithContext(ctx).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes pages through notes in primary key order.
func (dao *NoteDAO) ListNotes(ctx context.Context, offset, limit int) ([]models.Note, error) {
	notes := []models.Note{}
	if limit == 0 {
		return notes, nil
	}
	err := dao.DB.WithContext(ctx).Order("id asc").Offset(offset).Limit(limit).Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote overwrites text and completed and reports the matched row count.
func (dao *NoteDAO) UpdateNote(ctx context.Context, id int64, text string, completed bool) (int64, error) {
	res := dao.DB.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "completed": completed})
	return res.RowsAffected, res.Error
}

// DeleteNote removes the row and reports how many rows went away.
func (dao *NoteDAO) DeleteNote(ctx context.Context, id int64) (int64, error) {
	res := dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Note{})
	return res.RowsAffected, res.Error
}

func (dao *NoteDAO) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.Note{}).Count(&count).Error
	return count, err
}
