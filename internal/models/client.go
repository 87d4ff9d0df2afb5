package models

import "time"

// Cliente final, autenticado por verificação de telefone.
// Telefone único por empresa (não globalmente).
type Client struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	EnterpriseID uint `gorm:"uniqueIndex:idx_clients_enterprise_phone" json:"enterprise_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex:idx_clients_enterprise_phone" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
