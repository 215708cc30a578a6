package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/profile-backend/internal/http/response"
	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/services"
)

type ImageHandler struct {
	log      *logger.Logger
	uploader services.ImageUploader
}

func NewImageHandler(log *logger.Logger, uploader services.ImageUploader) *ImageHandler {
	return &ImageHandler{log: log.With("handler", "ImageHandler"), uploader: uploader}
}

// POST /store-img
// body: { "image": "<base64>" } as JSON, urlencoded or multipart form
func (h *ImageHandler) StoreImage(c *gin.Context) {
	var req struct {
		Image string `json:"image" form:"image"`
	}
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, h.log, apperrors.BadInput("invalid request body", err))
		return
	}
	url, err := h.uploader.Store(c.Request.Context(), req.Image)
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	response.Respond(c, http.StatusCreated, gin.H{"imageURL": url})
}
