package model

import (
	"time"

	"gorm.io/gorm"
)

// Project is owned by its Creador and shared with Colaboradores.
type Project struct {
	ID            string    `json:"_id" bson:"_id" gorm:"type:char(24);primaryKey"`
	Nombre        string    `json:"nombre" bson:"nombre" gorm:"size:255;not null"`
	Descripcion   string    `json:"descripcion" bson:"descripcion" gorm:"type:text;not null"`
	FechaEntrega  time.Time `json:"fechaEntrega" bson:"fechaEntrega"`
	Cliente       string    `json:"cliente" bson:"cliente" gorm:"size:255;not null"`
	Creador       string    `json:"creador" bson:"creador" gorm:"type:char(24);not null;index"`
	Colaboradores []string  `json:"colaboradores" bson:"colaboradores" gorm:"serializer:json;type:json"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate assigns an id before inserting the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Colaboradores == nil {
		p.Colaboradores = []string{}
	}
	return nil
}

// IsCreator reports whether userID owns the project.
func (p *Project) IsCreator(userID string) bool {
	return p.Creador == userID
}

// HasCollaborator reports whether userID is in Colaboradores.
func (p *Project) HasCollaborator(userID string) bool {
	for _, id := range p.Colaboradores {
		if id == userID {
			return true
		}
	}
	return false
}

// HasAccess reports whether userID is the creator or a collaborator.
func (p *Project) HasAccess(userID string) bool {
	return p.IsCreator(userID) || p.HasCollaborator(userID)
}

// AddCollaborator appends userID unless it is already present.
func (p *Project) AddCollaborator(userID string) bool {
	if p.HasCollaborator(userID) {
		return false
	}
	p.Colaboradores = append(p.Colaboradores, userID)
	return true
}

// RemoveCollaborator drops every occurrence of userID and reports whether
// anything was removed.
func (p *Project) RemoveCollaborator(userID string) bool {
	kept := make([]string, 0, len(p.Colaboradores))
	for _, id := range p.Colaboradores {
		if id != userID {
			kept = append(kept, id)
		}
	}
	removed := len(kept) != len(p.Colaboradores)
	p.Colaboradores = kept
	return removed
}

// ProjectDetail is a Project with its collaborators and tasks populated.
// The outer Colaboradores field shadows the embedded id list when encoded.
type ProjectDetail struct {
	Project
	Colaboradores []UserSummary `json:"colaboradores"`
	Tareas        []Task        `json:"tareas"`
}
