package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"livegate/internal/app"
	"livegate/internal/domain"
)

type Handlers struct {
	Issuer    *app.Issuer
	Directory *app.Directory
}

// TokenRequestBody is the body-style issuance shape. Role is compared
// case-insensitively to "publisher"; anything else is a viewer.
type TokenRequestBody struct {
	UserID   string `json:"userId"`
	RoomName string `json:"roomName"`
	Role     string `json:"role"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// GetToken is the query-style issuance shape. The token is returned as a
// bare string body; both shapes are equivalent in content.
func (h *Handlers) GetToken(c *gin.Context) {
	isPublisher, _ := strconv.ParseBool(c.Query("isPublisher"))
	token, err := h.Issuer.Issue(app.TokenRequest{
		Room:      domain.RoomName(c.Query("roomName")),
		Identity:  domain.Identity(c.Query("identity")),
		Publisher: isPublisher,
	})
	if err != nil {
		h.writeIssueError(c, err)
		return
	}
	c.String(http.StatusOK, "%s", token)
}

func (h *Handlers) PostToken(c *gin.Context) {
	var body TokenRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": app.ErrMissingField.Error()})
		return
	}
	token, err := h.Issuer.Issue(app.TokenRequest{
		Room:      domain.RoomName(body.RoomName),
		Identity:  domain.Identity(body.UserID),
		Publisher: app.ParseRole(body.Role),
	})
	if err != nil {
		h.writeIssueError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (h *Handlers) writeIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrIdentityTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("token issue failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// GetActiveLives lists current rooms. A Room Service outage surfaces as
// 500 here; in-process consumers use the directory's degrading path
// instead.
func (h *Handlers) GetActiveLives(c *gin.Context) {
	listings, err := h.Directory.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("room listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "room service unavailable"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
