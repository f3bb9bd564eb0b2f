package model

import (
	"time"

	"gorm.io/gorm"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "Baja"
	PriorityMedium Priority = "Media"
	PriorityHigh   Priority = "Alta"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task belongs to a single project by reference.
type Task struct {
	ID           string    `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	Nombre       string    `json:"nombre" bson:"nombre" gorm:"size:255;not null"`
	Descripcion  string    `json:"descripcion" bson:"descripcion" gorm:"type:text;not null"`
	Estado       bool      `json:"estado" bson:"estado" gorm:"default:false"`
	FechaEntrega time.Time `json:"fechaEntrega" bson:"fechaEntrega"`
	Prioridad    Priority  `json:"prioridad" bson:"prioridad" gorm:"type:varchar(10);not null"`
	Proyecto     string    `json:"proyecto" bson:"proyecto" gorm:"type:char(24);not null;index"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate assigns an id before inserting the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
