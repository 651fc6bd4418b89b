package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"secret-recipe-backend/domain"
	"secret-recipe-backend/entities"
	"secret-recipe-backend/internal/utils"
	"secret-recipe-backend/internal/utils/mailing"
	"secret-recipe-backend/internal/utils/pagination"
	"secret-recipe-backend/internal/utils/rules"
	"secret-recipe-backend/pkg/integrity"
	"secret-recipe-backend/pkg/jwt"
	"secret-recipe-backend/pkg/recipe"
)

const (
	bcryptCost         = 12
	resetTokenDuration = time.Hour
)

type (
	UserService interface {
		SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.AuthResponse, error)
		SignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error)
		AdminSignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error)
		GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ProfileResponse, error)
		GetPublicProfile(ctx context.Context, memberID string) (*domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, userID uuid.UUID, req domain.UpdateProfileRequest) (*entities.User, error)
		UpdatePassword(ctx context.Context, userID uuid.UUID, req domain.UpdatePasswordRequest) (*domain.AuthResponse, error)
		ForgetPassword(ctx context.Context, req domain.ForgetPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		GetCollectList(ctx context.Context, userID uuid.UUID, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error)

		GetMembers(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.User], error)
		GetAllMembers(ctx context.Context, sort string) ([]entities.User, error)
		GetMember(ctx context.Context, memberID string) (*domain.ProfileResponse, error)
		UpdateMember(ctx context.Context, memberID string, req domain.UpdateMemberRequest) (*entities.User, error)
		DeleteMember(ctx context.Context, memberID string) (*entities.User, error)
		DeleteAllMembers(ctx context.Context) error
	}

	userService struct {
		userRepository   UserRepository
		recipeRepository recipe.RecipeRepository
		integrityService integrity.IntegrityService
		jwtService       jwt.JWTService
	}
)

func NewUserService(
	userRepository UserRepository,
	recipeRepository recipe.RecipeRepository,
	integrityService integrity.IntegrityService,
	jwtService jwt.JWTService,
) UserService {
	return &userService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		integrityService: integrityService,
		jwtService:       jwtService,
	}
}

func credentialUser(user *entities.User) domain.CredentialUser {
	return domain.CredentialUser{
		ID:           user.ID.String(),
		NickName:     user.NickName,
		Email:        user.Email,
		AvatarImgURL: user.AvatarImgURL,
		Gender:       user.Gender,
		Description:  user.Description,
	}
}

func (s *userService) authResponse(user *entities.User) *domain.AuthResponse {
	return &domain.AuthResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
		User:  credentialUser(user),
	}
}

func (s *userService) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.AuthResponse, error) {
	_, lookupErr := s.userRepository.GetUserByEmail(ctx, req.Email)
	emailTaken := lookupErr == nil

	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidString(req.NickName, 2, 10), Message: domain.MessageInvalidNickName},
		{Failed: !rules.ValidPassword(req.Password), Message: domain.MessageInvalidPassword},
		{Failed: req.ConfirmPassword == "", Message: domain.MessageEmptyConfirmPassword},
		{Failed: req.Password != req.ConfirmPassword, Message: domain.MessagePasswordMismatch},
		{Failed: !rules.ValidEmail(req.Email), Message: domain.MessageInvalidEmail},
		{Failed: emailTaken, Message: domain.MessageEmailTaken},
	}); err != nil {
		return nil, err
	}
	if lookupErr != nil && !IsNotFound(lookupErr) {
		return nil, lookupErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		NickName: req.NickName,
		Email:    req.Email,
		Password: string(hash),
		Gender:   entities.GenderSecret,
		Role:     entities.RoleMember,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.authResponse(user), nil
}

func (s *userService) SignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error) {
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidEmail(req.Email), Message: domain.MessageInvalidEmail},
		{Failed: req.Password == "", Message: domain.MessageInvalidSignInPassword},
	}); err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if IsNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageEmailNotRegistered}
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, &rules.ValidationError{Message: domain.MessageWrongPassword}
	}
	return s.authResponse(user), nil
}

// AdminSignIn only matches admin accounts; a member account reads as not
// registered rather than forbidden.
func (s *userService) AdminSignIn(ctx context.Context, req domain.SignInRequest) (*domain.AuthResponse, error) {
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidEmail(req.Email), Message: domain.MessageInvalidEmail},
		{Failed: req.Password == "", Message: domain.MessageInvalidSignInPassword},
	}); err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByEmailAndRole(ctx, req.Email, entities.RoleAdmin)
	if err != nil {
		if IsNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageAdminNotRegistered}
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, &rules.ValidationError{Message: domain.MessageWrongPassword}
	}
	return s.authResponse(user), nil
}

func (s *userService) profileOf(ctx context.Context, user *entities.User) (*domain.ProfileResponse, error) {
	recipeCount, err := s.recipeRepository.CountRecipesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	collectCount, err := s.userRepository.CollectCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ProfileResponse{
		User:         *user,
		RecipeCount:  recipeCount,
		CollectCount: collectCount,
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageMemberNotFound}
		}
		return nil, err
	}
	// role only serializes on the admin member endpoints
	user.Role = ""
	return s.profileOf(ctx, user)
}

func (s *userService) resolveMember(ctx context.Context, memberID string) (*entities.User, error) {
	if !rules.ValidUUID(memberID) {
		return nil, &rules.ValidationError{Message: domain.MessageInvalidMemberID}
	}
	user, err := s.userRepository.GetUserByID(ctx, uuid.MustParse(memberID))
	if err != nil {
		if IsNotFound(err) {
			return nil, &rules.ValidationError{Message: domain.MessageMemberNotFound}
		}
		return nil, err
	}
	return user, nil
}

// GetPublicProfile is the anonymous view of a member page; the email and role
// never leave the server here.
func (s *userService) GetPublicProfile(ctx context.Context, memberID string) (*domain.ProfileResponse, error) {
	user, err := s.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	user.Email = ""
	user.Role = ""
	return s.profileOf(ctx, user)
}

func profileRules(req domain.UpdateProfileRequest) []rules.Rule {
	return []rules.Rule{
		{Failed: req.NickName != nil && !rules.ValidString(*req.NickName, 2, 10), Message: domain.MessageInvalidNickName},
		{Failed: req.Gender != nil && !rules.ValidGender(*req.Gender), Message: domain.MessageInvalidGender},
		{Failed: req.AvatarImgURL != nil && !rules.ValidURL(*req.AvatarImgURL), Message: domain.MessageInvalidAvatar},
		{Failed: req.Description != nil && !rules.ValidString(*req.Description, 0, 150), Message: domain.MessageInvalidUserDescription},
	}
}

func profileFields(req domain.UpdateProfileRequest) map[string]any {
	fields := map[string]any{"updated_at": time.Now()}
	if req.NickName != nil {
		fields["nick_name"] = *req.NickName
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.AvatarImgURL != nil {
		fields["avatar_img_url"] = *req.AvatarImgURL
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	return fields
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req domain.UpdateProfileRequest) (*entities.User, error) {
	if err := rules.Check(profileRules(req)); err != nil {
		return nil, err
	}
	user, err := s.userRepository.UpdateUser(ctx, userID, profileFields(req))
	if err != nil {
		return nil, err
	}
	user.Role = ""
	return user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID uuid.UUID, req domain.UpdatePasswordRequest) (*domain.AuthResponse, error) {
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidPassword(req.Password), Message: domain.MessageInvalidPassword},
		{Failed: req.ConfirmPassword == "", Message: domain.MessageEmptyConfirmPassword},
		{Failed: req.Password != req.ConfirmPassword, Message: domain.MessagePasswordMismatch},
	}); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	if err := s.userRepository.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.authResponse(user), nil
}

func (s *userService) ForgetPassword(ctx context.Context, req domain.ForgetPasswordRequest) error {
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidEmail(req.Email), Message: domain.MessageInvalidEmail},
	}); err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if IsNotFound(err) {
			return &rules.ValidationError{Message: domain.MessageMemberNotFound}
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(user.ID.String(), resetTokenDuration)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>親愛的 %s 您好：</p><p>請點擊以下連結重設密碼，連結將於一小時後失效。</p><p><a href=\"%s\">重設密碼</a></p>",
		user.NickName, resetLink,
	)
	return mailing.SendMail(user.Email, "密碼重設通知", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	userID, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return &rules.ValidationError{Message: domain.MessageResetTokenInvalid}
	}
	if err := rules.Check([]rules.Rule{
		{Failed: !rules.ValidPassword(req.Password), Message: domain.MessageInvalidPassword},
		{Failed: req.ConfirmPassword == "", Message: domain.MessageEmptyConfirmPassword},
		{Failed: req.Password != req.ConfirmPassword, Message: domain.MessagePasswordMismatch},
	}); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	// the account may be gone by the time the link is clicked
	if _, err := s.userRepository.GetUserByID(ctx, id); err != nil {
		if IsNotFound(err) {
			return &rules.ValidationError{Message: domain.MessageMemberNotFound}
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, id, string(hash))
}

// GetCollectList lists the public recipes the member has collected, with the
// same filters as the public listing.
func (s *userService) GetCollectList(ctx context.Context, userID uuid.UUID, q domain.RecipeListQuery) (pagination.Page[entities.Recipe], error) {
	filter, ok := recipe.BuildFilter(q)
	if !ok {
		return pagination.Page[entities.Recipe]{
			Results:    []entities.Recipe{},
			Pagination: pagination.Meta{TotalPage: 0, CurrentPage: 1},
		}, nil
	}
	filter.OnlyPublic = true
	filter.CollectedBy = &userID
	return s.recipeRepository.GetRecipes(
		ctx, filter,
		pagination.ResolveSort(q.Sort),
		pagination.Params{Page: q.Page, PerPage: q.PerPage},
	)
}

func (s *userService) GetMembers(ctx context.Context, sort string, params pagination.Params) (pagination.Page[entities.User], error) {
	return s.userRepository.GetMembers(ctx, pagination.ResolveUpdatedSort(sort), params)
}

func (s *userService) GetAllMembers(ctx context.Context, sort string) ([]entities.User, error) {
	return s.userRepository.GetAllMembers(ctx, pagination.ResolveUpdatedSort(sort))
}

func (s *userService) GetMember(ctx context.Context, memberID string) (*domain.ProfileResponse, error) {
	user, err := s.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.profileOf(ctx, user)
}

func (s *userService) UpdateMember(ctx context.Context, memberID string, req domain.UpdateMemberRequest) (*entities.User, error) {
	user, err := s.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	checks := profileRules(req.UpdateProfileRequest)
	checks = append(checks, rules.Rule{
		Failed:  req.Role != nil && *req.Role != entities.RoleMember && *req.Role != entities.RoleAdmin,
		Message: domain.MessageInvalidRole,
	})
	if err := rules.Check(checks); err != nil {
		return nil, err
	}

	fields := profileFields(req.UpdateProfileRequest)
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	return s.userRepository.UpdateUser(ctx, user.ID, fields)
}

func (s *userService) DeleteMember(ctx context.Context, memberID string) (*entities.User, error) {
	user, err := s.resolveMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.integrityService.DeleteMember(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteAllMembers(ctx context.Context) error {
	return s.integrityService.DeleteAllMembers(ctx)
}
