package domain

import (
	"errors"
)

var (
	MessageNotLoggedIn   = "尚未登入！"
	MessageNoAdminRight  = "無管理員權限"
	MessageTokenExpired  = "使用者已登出，請重新登入"
	MessageTokenInvalid  = "登入錯誤，請重新登入"
	MessageRouteNotFound = "無此網站路由"
	MessageServerError   = "系統錯誤，請聯絡系統管理員"

	MessageEmptyBody = "欄位不得為空！"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrUserNotAllowed = errors.New("user not allowed")
)
