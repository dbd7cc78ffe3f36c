package controller

import (
	"errors"
	"net/http"

	"github.com/ekaraca/mekanbul-backend/internal/app/service"
	apperrors "github.com/ekaraca/mekanbul-backend/internal/errors"
	"github.com/ekaraca/mekanbul-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteController(favoriteService *service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// Toggle handles POST /api/places/:id/favorite. The same endpoint adds and
// removes; the response says which happened.
func (ctrl *FavoriteController) Toggle(c *gin.Context) {
	placeID, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	added, err := ctrl.favoriteService.Toggle(userID, placeID)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	status := "removed"
	if added {
		status = "added"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ListMyFavorites handles GET /api/users/me/favorites
func (ctrl *FavoriteController) ListMyFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	page, pageSize := parsePagination(c)
	offset := (page - 1) * pageSize

	favorites, total, err := ctrl.favoriteService.ListForUser(userID, offset, pageSize)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, newPagedResponse(c, favorites, total, page, pageSize))
}
