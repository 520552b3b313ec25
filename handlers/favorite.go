package handlers

import (
	"net/http"

	"spacebook/services/favorite"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	Service favorite.FavoriteService
	Logger  *zap.Logger
}

func NewFavoriteHandler(svc favorite.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{Service: svc, Logger: logger}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req struct {
		PropertyID string `json:"propertyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	fav, err := h.Service.Add(c.Request.Context(), caller, req.PropertyID)
	if err != nil {
		respondError(c, h.Logger, "AddFavorite", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": fav, "message": "Added to favorites"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.Service.Remove(c.Request.Context(), caller, c.Param("propertyId")); err != nil {
		respondError(c, h.Logger, "RemoveFavorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from favorites"})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	favs, err := h.Service.List(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.Logger, "ListFavorites", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(favs), "data": favs})
}

func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	is, err := h.Service.IsFavorite(c.Request.Context(), caller, c.Param("propertyId"))
	if err != nil {
		respondError(c, h.Logger, "CheckFavorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isFavorite": is})
}
