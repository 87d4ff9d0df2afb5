package models

import "time"

type Professional struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	EnterpriseID uint `gorm:"index" json:"enterprise_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Phone     string `gorm:"size:20" json:"phone"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Janela semanal de atendimento do profissional, sempre em UTC.
// Um registro por profissional: intervalo de dias da semana + intervalo de horas.
type AvailabilityWindow struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	ProfessionalID uint `gorm:"uniqueIndex" json:"professional_id"`

	WeekdayFrom int `json:"weekday_from"`
	WeekdayTo   int `json:"weekday_to"`

	TimeFrom string `gorm:"size:5" json:"time_from"`
	TimeTo   string `gorm:"size:5" json:"time_to"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
