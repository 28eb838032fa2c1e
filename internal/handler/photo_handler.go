package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DronKashyap/DK-PropertyListings/internal/middleware"
	"github.com/DronKashyap/DK-PropertyListings/internal/repository"
	"github.com/DronKashyap/DK-PropertyListings/internal/service"
)

// PhotoHandler stores listing photos in GridFS. Upload is owner-gated like
// any other listing mutation; download is public.
type PhotoHandler struct {
	Photos   *repository.PhotoRepository
	Listings *repository.ListingRepository
	Access   *service.ListingAccess
}

func (h *PhotoHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/listings/:id/photo", h.DownloadPhoto)
	protected.POST("/my-listings/:id/photo", h.UploadPhoto)
}

// POST /my-listings/:id/photo
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing or invalid"})
		return
	}

	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	decision, err := h.Access.AuthorizeMutation(c.Request.Context(), principal, listingID, service.OpUpdate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if decision != service.DecisionAllowed {
		c.JSON(http.StatusForbidden, gin.H{"message": notAuthorizedMessage(service.OpUpdate)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("listing_%d_%s", listingID, fileHeader.Filename)
	photoID, err := h.Photos.Upload(file, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if err := h.Listings.UpdatePhotoFileID(c.Request.Context(), listingID, photoID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_id": photoID})
}

// GET /listings/:id/photo
func (h *PhotoHandler) DownloadPhoto(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}

	listing, err := h.Listings.GetByID(c.Request.Context(), listingID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if listing.PhotoFileID == "" {
		c.JSON(http.StatusNotFound, gin.H{"message": "photo not found for this listing"})
		return
	}

	data, filename, err := h.Photos.Download(listing.PhotoFileID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.Header("Content-Disposition", "inline; filename="+filename)
	c.Data(http.StatusOK, "image/jpeg", data)
}
