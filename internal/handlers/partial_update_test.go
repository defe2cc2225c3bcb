package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProjectAcceptsPartialBody(t *testing.T) {
	r := setupAPI(t)
	token := registerUser(t, r, "Ana", "ana@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":        "Huerto urbano",
		"description": "Huerto compartido en el barrio",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	projectID := decode(t, w)["id"].(float64)

	// Status-only patch keeps name and description untouched.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/projects/%.0f", projectID), token, gin.H{
		"status": "paused",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode(t, w)
	assert.Equal(t, "paused", updated["status"])
	assert.Equal(t, "Huerto urbano", updated["name"])
	assert.Equal(t, "Huerto compartido en el barrio", updated["description"])

	// Name-only patch keeps the paused status.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/projects/%.0f", projectID), token, gin.H{
		"name": "Huerto vecinal",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated = decode(t, w)
	assert.Equal(t, "Huerto vecinal", updated["name"])
	assert.Equal(t, "paused", updated["status"])
}

func TestUpdatePublicationAcceptsPartialBody(t *testing.T) {
	r := setupAPI(t)
	token := registerUser(t, r, "Ana", "ana@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/publications", token, gin.H{
		"kind":   "offer",
		"title":  "Se busca jardinero",
		"skills": []string{"poda"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	publicationID := decode(t, w)["ID"].(float64)

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/publications/%.0f", publicationID), token, gin.H{
		"status": "paused",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode(t, w)
	assert.Equal(t, "paused", updated["Status"])
	assert.Equal(t, "offer", updated["Kind"])
	assert.Equal(t, "Se busca jardinero", updated["Title"])

	// An invalid kind is still rejected when present.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/publications/%.0f", publicationID), token, gin.H{
		"kind": "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
