package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Collaborators(t *testing.T) {
	p := &Project{Creador: "creator"}

	assert.True(t, p.AddCollaborator("a"))
	assert.False(t, p.AddCollaborator("a"))
	assert.True(t, p.AddCollaborator("b"))
	assert.Equal(t, []string{"a", "b"}, p.Colaboradores)

	assert.True(t, p.HasAccess("creator"))
	assert.True(t, p.HasAccess("a"))
	assert.False(t, p.HasAccess("z"))

	assert.False(t, p.RemoveCollaborator("z"))
	assert.Equal(t, []string{"a", "b"}, p.Colaboradores)
	assert.True(t, p.RemoveCollaborator("a"))
	assert.Equal(t, []string{"b"}, p.Colaboradores)
}

func TestProjectDetail_JSONShadowsCollaboratorIDs(t *testing.T) {
	detail := ProjectDetail{
		Project:       Project{ID: NewID(), Nombre: "Site", Colaboradores: []string{"x"}},
		Colaboradores: []UserSummary{{ID: "x", Nombre: "Ana", Email: "ana@example.com"}},
		Tareas:        []Task{},
	}

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	collaborators, ok := decoded["colaboradores"].([]interface{})
	require.True(t, ok)
	require.Len(t, collaborators, 1)
	assert.Equal(t, "ana@example.com", collaborators[0].(map[string]interface{})["email"])
	assert.Contains(t, decoded, "tareas")
}

func TestUser_JSONRedaction(t *testing.T) {
	u := User{ID: NewID(), Nombre: "Ana", Email: "ana@example.com", Password: "hash", Token: "tok", Confirmado: true}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	for _, field := range []string{"password", "token", "confirmado", "createdAt", "updatedAt"} {
		assert.NotContains(t, string(raw), field)
	}
	assert.Equal(t, UserSummary{ID: u.ID, Nombre: "Ana", Email: "ana@example.com"}, u.Summary())
}

func TestIDs(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 24)
	assert.True(t, IsValidID(id))
	assert.False(t, IsValidID("123"))
	assert.False(t, IsValidID("zzzzzzzzzzzzzzzzzzzzzzzz"))
}

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("Urgente").Valid())
}
