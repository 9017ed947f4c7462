package handlers

import (
	"net/http"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/cache"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/middleware"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gin-gonic/gin"
)

// CacheHandler exposes cache introspection to administrators.
type CacheHandler struct {
	Cache cache.Cache
}

func NewCacheHandler(cacheInstance cache.Cache) *CacheHandler {
	return &CacheHandler{Cache: cacheInstance}
}

// GetCacheStats returns hit/miss counters and circuit breaker state.
// GET /cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     h.Cache.Stats(),
		"timestamp": time.Now().UTC(),
	})
}

// GetCacheHealth pings every cache level.
// GET /cache/health
func (h *CacheHandler) GetCacheHealth(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.Cache.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// FlushCache drops every cached board snapshot.
// POST /cache/flush
func (h *CacheHandler) FlushCache(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	if err := h.Cache.DeletePattern("*"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to flush cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cache flushed"})
}

func (h *CacheHandler) requireAdmin(c *gin.Context) bool {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if actor.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not permitted"})
		return false
	}
	return true
}
