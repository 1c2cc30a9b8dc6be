package dto

// SignupRequest is the POST /auth/signup body.
type SignupRequest struct {
	ChannelName string `json:"channelName" binding:"required"`
	UserName    string `json:"userName" binding:"required"`
	Password    string `json:"password" binding:"required"`
	About       string `json:"about"`
	ProfilePic  string `json:"profilePic"`
}

// LoginRequest is the POST /auth/login body. DeviceID, when present, is
// embedded into the session token and checked on every authenticated request.
type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"deviceId,omitempty"`
}

// LoginResponse returns the token plus the sanitized user record.
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// ChangeRoleRequest is the PUT /auth/change-role/:id body.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
