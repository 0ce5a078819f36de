package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRecord_UserDropsPassword(t *testing.T) {
	rec := CredentialRecord{ID: 3, Username: "admin", Email: "admin@example.com", Password: "admin123", FullName: "Administrador"}

	u := rec.User()
	assert.Equal(t, User{ID: 3, Username: "admin", Email: "admin@example.com", FullName: "Administrador"}, u)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "admin123")
	assert.JSONEq(t, `{"id":3,"username":"admin","email":"admin@example.com","fullName":"Administrador"}`, string(b))
}

func TestUser_Valid(t *testing.T) {
	assert.False(t, User{}.Valid())
	assert.False(t, User{ID: 1}.Valid())
	assert.True(t, User{Username: "chef"}.Valid())
}
