package usecase

import (
	"context"
	"fmt"

	"vidstream/domain/dto"
	"vidstream/domain/model"
	"vidstream/domain/repository"
	"vidstream/infrastructure/logger"
	"vidstream/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type IUserUsecase interface {
	Signup(ctx context.Context, req dto.SignupRequest) (model.User, error)
	// Login verifies credentials and mints a session token. When
	// req.DeviceID is set it is embedded into the token and every
	// authenticated request must present the same device id.
	Login(ctx context.Context, req dto.LoginRequest) (string, model.User, error)
	Subscribe(ctx context.Context, userID, channelID bson.ObjectID) error
	Unsubscribe(ctx context.Context, userID, channelID bson.ObjectID) error
	SubscriptionVideos(ctx context.Context, userID bson.ObjectID) ([]model.Video, error)
	GetByChannelName(ctx context.Context, channelName string) (model.User, error)
	SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) error
	ChangeRole(ctx context.Context, id bson.ObjectID, role string) error
	GetAllUsers(ctx context.Context) ([]model.User, error)
}

type userUsecase struct {
	userRepo  repository.IUser
	videoRepo repository.IVideo
	secretKey string
}

func NewUserUsecase(userRepo repository.IUser, videoRepo repository.IVideo, secretKey string) IUserUsecase {
	return &userUsecase{userRepo: userRepo, videoRepo: videoRepo, secretKey: secretKey}
}

func (u *userUsecase) Signup(ctx context.Context, req dto.SignupRequest) (model.User, error) {
	if _, err := u.userRepo.GetByUserName(ctx, req.UserName); err == nil {
		return model.User{}, fmt.Errorf("%w: user already exists", model.ErrConflict)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("user: hashing password failed")
		return model.User{}, err
	}

	user := model.User{
		ChannelName: req.ChannelName,
		UserName:    req.UserName,
		Password:    hash,
		About:       req.About,
		ProfilePic:  req.ProfilePic,
		Role:        model.RoleUser,
	}
	created, err := u.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index can still catch a concurrent signup.
		return model.User{}, err
	}
	return created, nil
}

func (u *userUsecase) Login(ctx context.Context, req dto.LoginRequest) (string, model.User, error) {
	user, err := u.userRepo.GetByUserName(ctx, req.UserName)
	if err != nil {
		return "", model.User{}, err
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return "", model.User{}, fmt.Errorf("%w: invalid credentials", model.ErrValidation)
	}

	payload := map[string]interface{}{"userId": user.ID.Hex()}
	if req.DeviceID != "" {
		payload["deviceId"] = req.DeviceID
	}
	token, err := utils.GenerateToken(payload, u.secretKey)
	if err != nil {
		return "", model.User{}, err
	}
	return token, user, nil
}

func (u *userUsecase) Subscribe(ctx context.Context, userID, channelID bson.ObjectID) error {
	if userID == channelID {
		return fmt.Errorf("%w: cannot subscribe to your own channel", model.ErrValidation)
	}
	if _, err := u.userRepo.GetByID(ctx, channelID); err != nil {
		return err
	}
	return u.userRepo.AddSubscription(ctx, userID, channelID)
}

func (u *userUsecase) Unsubscribe(ctx context.Context, userID, channelID bson.ObjectID) error {
	return u.userRepo.RemoveSubscription(ctx, userID, channelID)
}

func (u *userUsecase) SubscriptionVideos(ctx context.Context, userID bson.ObjectID) ([]model.Video, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.videoRepo.GetByUsers(ctx, user.SubscribedChannels)
}

func (u *userUsecase) GetByChannelName(ctx context.Context, channelName string) (model.User, error) {
	return u.userRepo.GetByChannelName(ctx, channelName)
}

func (u *userUsecase) SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) error {
	return u.userRepo.SetBlocked(ctx, id, blocked)
}

func (u *userUsecase) ChangeRole(ctx context.Context, id bson.ObjectID, role string) error {
	if role != model.RoleUser && role != model.RoleAdmin {
		return fmt.Errorf("%w: role must be %q or %q", model.ErrValidation, model.RoleUser, model.RoleAdmin)
	}
	return u.userRepo.SetRole(ctx, id, role)
}

func (u *userUsecase) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return u.userRepo.GetAll(ctx)
}
