package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DronKashyap/DK-PropertyListings/internal/middleware"
	"github.com/DronKashyap/DK-PropertyListings/internal/model"
	"github.com/DronKashyap/DK-PropertyListings/internal/repository"
	"github.com/DronKashyap/DK-PropertyListings/internal/service"
)

// ListingHandler manages all listing operations.
type ListingHandler struct {
	Repo   *repository.ListingRepository
	Access *service.ListingAccess
}

// RegisterRoutes registers the open browse routes and the bearer-protected
// owner routes.
func (h *ListingHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/listings", h.GetListings)
	public.GET("/listings/:id", h.GetListingByID)

	protected.POST("/listing", h.CreateListing)
	protected.GET("/my-listings", h.GetMyListings)
	protected.PUT("/my-listings/:id", h.UpdateMyListing)
	protected.DELETE("/my-listings/:id", h.DeleteMyListing)
}

// CreateListingRequestDTO mirrors the original create payload. The owner is
// not part of it: it comes from the authenticated principal.
type CreateListingRequestDTO struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	RegularPrice  float64  `json:"regularPrice"`
	DiscountPrice float64  `json:"discountPrice"`
	Bathrooms     int      `json:"bathrooms"`
	Bedrooms      int      `json:"bedrooms"`
	Furnished     bool     `json:"furnished"`
	Parking       bool     `json:"parking"`
	Type          string   `json:"type" binding:"required"`
	Offer         bool     `json:"offer"`
	ImageURLs     []string `json:"imageUrls" binding:"required,dive,url"`
}

// POST /listing
func (h *ListingHandler) CreateListing(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	var req CreateListingRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	listing := &model.Listing{
		UserID:        principal.UserID,
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Bathrooms:     req.Bathrooms,
		Bedrooms:      req.Bedrooms,
		Furnished:     req.Furnished,
		Parking:       req.Parking,
		Type:          req.Type,
		Offer:         req.Offer,
		ImageURLs:     req.ImageURLs,
	}
	if err := h.Repo.Create(c.Request.Context(), listing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Listing created successfully", "listing": listing})
}

// GET /listings?type=...&offer=...&min_price=...&max_price=...&limit=...&offset=...
func (h *ListingHandler) GetListings(c *gin.Context) {
	var filter repository.ListingFilter
	if v := c.Query("type"); v != "" {
		filter.Type = v
	}
	if v := c.Query("offer"); v != "" {
		if offer, err := strconv.ParseBool(v); err == nil {
			filter.Offer = &offer
		}
	}
	if v := c.Query("min_price"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &min
		}
	}
	if v := c.Query("max_price"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &max
		}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.Repo.GetFiltered(c.Request.Context(), filter, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if list == nil {
		list = []model.Listing{}
	}
	c.JSON(http.StatusOK, gin.H{"listings": list})
}

// GET /listings/:id
func (h *ListingHandler) GetListingByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}

	listing, err := h.Repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

// GET /my-listings
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.Repo.GetFiltered(c.Request.Context(), h.Access.OwnerFilter(principal), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if list == nil {
		list = []model.Listing{}
	}
	c.JSON(http.StatusOK, gin.H{"listings": list})
}

// PUT /my-listings/:id
func (h *ListingHandler) UpdateMyListing(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	// Strict decode: every updatable field is enumerated on ListingPatch and
	// anything else is rejected instead of being passed through to storage.
	var patch model.ListingPatch
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input", "errors": err.Error()})
		return
	}

	updated, decision, err := h.Access.UpdateOwned(c.Request.Context(), principal, id, patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if decision != service.DecisionAllowed {
		// missing and not-owned listings get the same response on purpose
		c.JSON(http.StatusForbidden, gin.H{"message": notAuthorizedMessage(service.OpUpdate)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing updated successfully", "updatedListing": updated})
}

// DELETE /my-listings/:id
func (h *ListingHandler) DeleteMyListing(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	decision, err := h.Access.DeleteOwned(c.Request.Context(), principal, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if decision != service.DecisionAllowed {
		c.JSON(http.StatusForbidden, gin.H{"message": notAuthorizedMessage(service.OpDelete)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

func notAuthorizedMessage(op service.Operation) string {
	return fmt.Sprintf("You are not authorized to %s this listing", op)
}
