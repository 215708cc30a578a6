package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/profile-backend/internal/domain/profile"
	"github.com/yungbote/profile-backend/internal/http/response"
	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/services"
)

type ProfileHandler struct {
	log      *logger.Logger
	resolver services.ProfileResolver
	merger   services.ProfileMerger
}

func NewProfileHandler(log *logger.Logger, resolver services.ProfileResolver, merger services.ProfileMerger) *ProfileHandler {
	return &ProfileHandler{
		log:      log.With("handler", "ProfileHandler"),
		resolver: resolver,
		merger:   merger,
	}
}

func callerIdentity(c *gin.Context) types.Identity {
	if sd := ctxutil.GetSessionData(c.Request.Context()); sd != nil {
		return types.Identity{Username: sd.Username}
	}
	return types.Identity{}
}

// GET /user-data/:username
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Fail(c, h.log, apperrors.BadInput("username required", nil))
		return
	}
	res, err := h.resolver.Resolve(c.Request.Context(), username, callerIdentity(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	c.Header("X-Profile-Source", string(res.Source))
	response.RespondRawJSON(c, http.StatusOK, res.Document)
}

// POST /user-data/:username
// body: a JSON object whose top-level keys replace the stored ones
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Fail(c, h.log, apperrors.BadInput("username required", nil))
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, h.log, apperrors.BadInput("request body too large", err))
			return
		}
		response.Fail(c, h.log, apperrors.BadInput("could not read request body", err))
		return
	}
	outcome, err := h.merger.Upsert(c.Request.Context(), username, body, callerIdentity(c))
	if err != nil {
		response.Fail(c, h.log, err)
		return
	}
	status := http.StatusOK
	if outcome == services.OutcomeCreated {
		status = http.StatusCreated
	}
	response.Respond(c, status, gin.H{"outcome": outcome})
}
