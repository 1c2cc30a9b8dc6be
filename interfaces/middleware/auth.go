package middleware

import (
	"errors"
	"net/http"
	"strings"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"
	"vidstream/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Context keys populated by Auth.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// CurrentUser pulls the authenticated user out of the gin context.
func CurrentUser(ctx *gin.Context) (model.User, bool) {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

// Auth validates the session token, resolves it to a non-blocked user and
// attaches the record to the request context. The token is read from the
// `token` cookie first, with the Authorization header as fallback. When the
// claims carry a device id, the caller must present the same id via the
// X-Device-ID header or deviceId cookie.
func Auth(userRepository repository.IUser, secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
				ResponseCode:    "401",
				ResponseMessage: "Unauthorized - No token",
			})
			return
		}

		claims, err := parseClaims(token, secretKey)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
				ResponseCode:    "401",
				ResponseMessage: tokenErrorMessage(err),
			})
			return
		}

		userID, err := bson.ObjectIDFromHex(claims.UserID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
				ResponseCode:    "401",
				ResponseMessage: "Invalid token",
			})
			return
		}

		user, err := userRepository.GetByID(ctx.Request.Context(), userID)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
				ResponseCode:    "401",
				ResponseMessage: "Invalid token",
			})
			return
		}

		if user.IsBlocked {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.Res{
				ResponseCode:    "403",
				ResponseMessage: "Your account has been blocked",
			})
			return
		}

		// Device binding only applies when the token was minted with one.
		if claims.DeviceID != "" {
			deviceID := ctx.GetHeader("X-Device-ID")
			if deviceID == "" {
				deviceID, _ = ctx.Cookie("deviceId")
			}
			if deviceID != claims.DeviceID {
				logger.GetLogger().WithField("user", user.ID.Hex()).Warn("auth: device id mismatch")
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Res{
					ResponseCode:    "401",
					ResponseMessage: "Session invalid. Please login again.",
				})
				return
			}
		}

		ctx.Set(ContextUserKey, user)
		ctx.Set(ContextUserIDKey, user.ID.Hex())
		ctx.Next()
	}
}

// Admin gates a route to admin accounts. Must run after Auth.
func Admin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := CurrentUser(ctx)
		if !ok || !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.Res{
				ResponseCode:    "403",
				ResponseMessage: "Admin access required",
			})
			return
		}
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	authorization := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}
	return ""
}

func parseClaims(token, secretKey string) (*model.UserClaims, error) {
	var claims model.UserClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

func tokenErrorMessage(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return "Token is expired"
		}
	}
	return "Unauthorized - Invalid token"
}
