// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/credential-verifier/backend/internal/domain/entity"
)

// CredentialModel represents the credentials table in the database.
type CredentialModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Identifier string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	SecretHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the CredentialModel.
func (CredentialModel) TableName() string {
	return "credentials"
}

// ToEntity converts a CredentialModel to a domain CredentialRecord entity.
func (m *CredentialModel) ToEntity() *entity.CredentialRecord {
	return &entity.CredentialRecord{
		ID:         m.ID,
		Identifier: m.Identifier,
		SecretHash: m.SecretHash,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromEntity creates a CredentialModel from a domain CredentialRecord entity.
func FromEntity(record *entity.CredentialRecord) *CredentialModel {
	return &CredentialModel{
		ID:         record.ID,
		Identifier: record.Identifier,
		SecretHash: record.SecretHash,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}
