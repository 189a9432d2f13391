package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is one persisted key/value row.
type Document struct {
	Key       string `gorm:"column:doc_key;primaryKey;size:128"`
	Body      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (d *Document) TableName() string {
	return "documents"
}

type GormDocuments struct {
	db *gorm.DB
}

func NewGormDocuments(db *gorm.DB) *GormDocuments {
	return &GormDocuments{
		db: db,
	}
}

// Migrate creates the documents table if it does not exist yet.
func (r *GormDocuments) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Document{})
}

func (r *GormDocuments) Get(ctx context.Context, key string) ([]byte, error) {
	var doc Document
	if err := r.db.WithContext(ctx).
		Where("doc_key = ?", key).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.Body, nil
}

func (r *GormDocuments) Put(ctx context.Context, key string, body []byte) error {
	doc := Document{Key: key, Body: body}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&doc).Error
}

func (r *GormDocuments) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("doc_key = ?", key).
		Delete(&Document{}).Error
}
