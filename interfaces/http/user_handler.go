package http

import (
	"fmt"
	"net/http"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/infrastructure/logger"
	"vidstream/interfaces/middleware"
	"vidstream/usecase"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ErrorUnmarshal = "Error while unmarshal"

	tokenCookieName   = "token"
	tokenCookieMaxAge = 7 * 24 * 3600
)

type IUserHandler interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	Subscribe(c *gin.Context)
	Unsubscribe(c *gin.Context)
	SubscriptionVideos(c *gin.Context)
	GetByChannelName(c *gin.Context)
	BlockUser(c *gin.Context)
	UnblockUser(c *gin.Context)
	ChangeRole(c *gin.Context)
	GetAllUsers(c *gin.Context)
}

type UserHandler struct {
	userUsecase  usecase.IUserUsecase
	cookieSecure bool
}

func NewUserHandler(userUsecase usecase.IUserUsecase, cookieSecure bool) IUserHandler {
	return &UserHandler{userUsecase: userUsecase, cookieSecure: cookieSecure}
}

// sanitizedUser strips fields that must not leave the server.
func sanitizedUser(u model.User) gin.H {
	return gin.H{
		"_id":         u.ID,
		"userName":    u.UserName,
		"channelName": u.ChannelName,
		"about":       u.About,
		"profilePic":  u.ProfilePic,
		"role":        u.Role,
		"isBlocked":   u.IsBlocked,
		"subscribers": u.Subscribers,
	}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	user, err := h.userUsecase.Signup(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Res{
		ResponseCode:    "201",
		ResponseMessage: "User created successfully",
		Data:            sanitizedUser(user),
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	token, user, err := h.userUsecase.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookieName, token, tokenCookieMaxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, okRes("User logged in successfully", dto.LoginResponse{
		Token: token,
		User:  sanitizedUser(user),
	}))
}

func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(tokenCookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, okRes("User logged out successfully", nil))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}
	channelID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, model.ErrNotFound)
		return
	}
	if err := h.userUsecase.Subscribe(c.Request.Context(), user.ID, channelID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Subscribed successfully", nil))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}
	channelID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, model.ErrNotFound)
		return
	}
	if err := h.userUsecase.Unsubscribe(c.Request.Context(), user.ID, channelID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Unsubscribed successfully", nil))
}

func (h *UserHandler) SubscriptionVideos(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"})
		return
	}
	videos, err := h.userUsecase.SubscriptionVideos(c.Request.Context(), user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Videos fetched successfully", videos))
}

func (h *UserHandler) GetByChannelName(c *gin.Context) {
	user, err := h.userUsecase.GetByChannelName(c.Request.Context(), c.Param("channelName"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("User fetched successfully", sanitizedUser(user)))
}

func (h *UserHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true, "User blocked successfully")
}

func (h *UserHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false, "User unblocked successfully")
}

func (h *UserHandler) setBlocked(c *gin.Context, blocked bool, message string) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, model.ErrNotFound)
		return
	}
	if err := h.userUsecase.SetBlocked(c.Request.Context(), id, blocked); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes(message, nil))
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, model.ErrNotFound)
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Res{
			ResponseCode:    "400",
			ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error()),
		})
		return
	}

	if err := h.userUsecase.ChangeRole(c.Request.Context(), id, req.Role); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, okRes("Role updated successfully", nil))
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userUsecase.GetAllUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	sanitized := make([]gin.H, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, sanitizedUser(u))
	}
	c.JSON(http.StatusOK, okRes("Users fetched successfully", sanitized))
}
