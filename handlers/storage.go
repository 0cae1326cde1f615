package handlers

import (
	"net/http"

	"obrafacil/middleware"
	"obrafacil/services/provider"
	"obrafacil/services/storage"
	"obrafacil/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 8 << 20 // 8 MiB

// StorageHandler exposes image upload endpoints backed by Cloudinary.
type StorageHandler struct {
	Storage         storage.StorageService
	ProviderService provider.ProviderService
}

func NewStorageHandler(st storage.StorageService, prov provider.ProviderService) *StorageHandler {
	return &StorageHandler{Storage: st, ProviderService: prov}
}

// UploadImageHandler handles POST /api/uploads (multipart field "file").
// Returns the public URL so the client can attach it to a review or portfolio
// entry in a follow-up request.
func (h *StorageHandler) UploadImageHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo não enviado"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "arquivo muito grande"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falha ao ler o arquivo"})
		return
	}
	defer file.Close()

	url, err := h.Storage.Upload(c.Request.Context(), file, "obrafacil/"+callerID, uuid.New().String())
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": "falha ao armazenar o arquivo"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// UploadAvatarHandler handles PUT /api/providers/me/avatar (multipart field
// "file"): uploads the image and stores the URL on the provider profile.
func (h *StorageHandler) UploadAvatarHandler(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "autenticação necessária"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arquivo não enviado"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "arquivo muito grande"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falha ao ler o arquivo"})
		return
	}
	defer file.Close()

	url, err := h.Storage.Upload(c.Request.Context(), file, "obrafacil/avatars", callerID)
	if err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": "falha ao armazenar o arquivo"})
		return
	}
	if err := h.ProviderService.SetAvatar(callerID, url); err != nil {
		c.JSON(utils.StatusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
