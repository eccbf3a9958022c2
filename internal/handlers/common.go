package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"go-inventory-admin/internal/middleware"
	"go-inventory-admin/internal/services"

	"github.com/gin-gonic/gin"
)

// actorFrom reads the authenticated operator out of the request context.
func actorFrom(c *gin.Context) services.Actor {
	var actor services.Actor
	if v, ok := c.Get(middleware.CtxUserID); ok {
		if id, ok := v.(uint); ok {
			actor.ID = id
		}
	}
	if v, ok := c.Get(middleware.CtxUserName); ok {
		if name, ok := v.(string); ok {
			actor.Name = name
		}
	}
	return actor
}

// columnKeys rewrites the camelCase keys of a partial-update body to
// column names, so the map can be handed straight to gorm.
func columnKeys(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[toSnake(k)] = v
	}
	return out
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// respondServiceError maps service error kinds onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
