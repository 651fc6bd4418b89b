package domain

import (
	"secret-recipe-backend/entities"
)

var (
	MessageInvalidNickName        = "暱稱需介於 2 到 10 個字元之間！"
	MessageInvalidPassword        = "密碼需為英數混合，長度為 8 至 30 個字元！"
	MessageEmptyConfirmPassword   = "確認密碼不得為空！"
	MessagePasswordMismatch       = "密碼與確認密碼不一致！"
	MessageInvalidEmail           = "電子信箱格式錯誤！"
	MessageEmailTaken             = "此電子信箱已被使用！"
	MessageEmailNotRegistered     = "此帳號尚未被註冊過！"
	MessageAdminNotRegistered     = "此帳號尚未被註冊過或權限不足！"
	MessageWrongPassword          = "密碼錯誤！"
	MessageInvalidMemberID        = "會員 ID 錯誤！"
	MessageMemberNotFound         = "查無此會員！"
	MessageInvalidGender          = "性別欄位錯誤！"
	MessageInvalidAvatar          = "頭像格式錯誤！"
	MessageInvalidUserDescription = "自我介紹需小於 150 個字元！"
	MessageInvalidSignInPassword  = "密碼欄位錯誤！"
	MessageInvalidRole            = "角色欄位錯誤！"
	MessageResetMailSent          = "密碼重設 Email 已發送"
	MessageResetMailFailed        = "Email 發送失敗！"
	MessageResetTokenInvalid      = "無效或過期的 Token！"
)

type (
	SignUpRequest struct {
		NickName        string `json:"nickName"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	SignInRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	UpdateProfileRequest struct {
		NickName     *string `json:"nickName"`
		Gender       *string `json:"gender"`
		AvatarImgURL *string `json:"avatarImgUrl"`
		Description  *string `json:"description"`
	}

	// UpdateMemberRequest is the admin variant; it may additionally change the
	// member's role.
	UpdateMemberRequest struct {
		UpdateProfileRequest
		Role *string `json:"role"`
	}

	UpdatePasswordRequest struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	ForgetPasswordRequest struct {
		Email string `json:"email" validate:"required"`
	}

	ResetPasswordRequest struct {
		Token           string `json:"token" validate:"required"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	CredentialUser struct {
		ID           string `json:"id"`
		NickName     string `json:"nickName"`
		Email        string `json:"email"`
		AvatarImgURL string `json:"avatarImgUrl"`
		Gender       string `json:"gender"`
		Description  string `json:"description"`
	}

	AuthResponse struct {
		Token string         `json:"token"`
		User  CredentialUser `json:"user"`
	}

	ProfileResponse struct {
		entities.User
		RecipeCount  int64 `json:"recipeCount"`
		CollectCount int64 `json:"collectCount"`
	}
)
