package controller

import (
	"errors"
	"net/http"

	"github.com/ekaraca/mekanbul-backend/internal/app/service"
	apperrors "github.com/ekaraca/mekanbul-backend/internal/errors"
	"github.com/ekaraca/mekanbul-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type createReviewRequest struct {
	Rating    int      `json:"rating" binding:"required"`
	Comment   string   `json:"comment" binding:"required"`
	ImageURLs []string `json:"image_urls"`
}

// updateReviewRequest is a partial edit; absent fields keep their value
type updateReviewRequest struct {
	Rating    *int      `json:"rating"`
	Comment   *string   `json:"comment"`
	ImageURLs *[]string `json:"image_urls"`
}

// CreateReview handles POST /api/places/:id/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	placeID, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "rating and comment are required")
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, placeID, req.Rating, req.Comment, req.ImageURLs)
	if err != nil {
		ctrl.respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListPlaceReviews handles GET /api/places/:id/reviews
func (ctrl *ReviewController) ListPlaceReviews(c *gin.Context) {
	placeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	offset := (page - 1) * pageSize

	reviews, total, err := ctrl.reviewService.GetReviewsByPlace(placeID, offset, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrPlaceNotFound) {
			apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, newPagedResponse(c, reviews, total, page, pageSize))
}

// ListMyReviews handles GET /api/users/me/reviews
func (ctrl *ReviewController) ListMyReviews(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	page, pageSize := parsePagination(c)
	offset := (page - 1) * pageSize

	reviews, total, err := ctrl.reviewService.GetReviewsByUser(userID, offset, pageSize)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, newPagedResponse(c, reviews, total, page, pageSize))
}

// UpdateReview handles PUT /api/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "request body must be valid JSON")
		return
	}
	if req.Rating == nil && req.Comment == nil && req.ImageURLs == nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "at least one of rating, comment or image_urls must be provided")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(reviewID, userID, service.ReviewUpdate{
		Rating:    req.Rating,
		Comment:   req.Comment,
		ImageURLs: req.ImageURLs,
	})
	if err != nil {
		ctrl.respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview handles DELETE /api/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c)
	if !ok {
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.reviewService.DeleteReview(reviewID, userID); err != nil {
		ctrl.respondReviewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func (ctrl *ReviewController) respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
	case errors.Is(err, service.ErrReviewAlreadyExists):
		apperrors.BadRequest(c, apperrors.ReviewAlreadyExists, "You have already reviewed this place")
	case errors.Is(err, service.ErrPlaceNotFound):
		apperrors.NotFound(c, apperrors.PlaceNotFound, "Place not found")
	case errors.Is(err, service.ErrReviewNotFound):
		apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
	case errors.Is(err, service.ErrReviewForbidden):
		apperrors.Forbidden(c, "You can only modify your own reviews")
	default:
		info := apperrors.ParseError(err, "review")
		status := http.StatusInternalServerError
		if info.Code == apperrors.ReviewAlreadyExists || info.Code == apperrors.ReviewInvalidRating {
			status = http.StatusBadRequest
		}
		apperrors.RespondWithError(c, status, info.Code, info.Message)
	}
}
