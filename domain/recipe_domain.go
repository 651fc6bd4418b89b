package domain

import (
	"secret-recipe-backend/entities"
)

var (
	MessageInvalidRecipeID      = "食譜 ID 錯誤！"
	MessageRecipeNotFound       = "查無此食譜！"
	MessageRecipeNotAccessible  = "查無此食譜或權限不足！"
	MessageInvalidTitle         = "標題欄位錯誤，且標題需介於 1 到 20 個字元之間！"
	MessageInvalidDescription   = "描述欄位錯誤，且描述需介於 1 到 300 個字元之間！"
	MessageInvalidNote          = "小撇步欄位錯誤！"
	MessageInvalidIsPublic      = "公開狀態格式錯誤！"
	MessageInvalidCover         = "封面格式錯誤！"
	MessageInvalidCookingTime   = "烹飪時間欄位錯誤！"
	MessageInvalidServings      = "份量欄位錯誤，且份量需介於 1 到 10 之間！"
	MessageInvalidCategoryID    = "分類 ID 錯誤！"
	MessageCategoryNotFound     = "查無此分類！"
	MessageInvalidCategoryRef   = "分類 ID 錯誤或查無此分類！"
	MessageInvalidTags          = "標籤欄位錯誤，且每個食譜最多只能有 3 個標籤！"
	MessageInvalidNutrition     = "營養資訊欄位錯誤！"
	MessageInvalidIngredients   = "食材欄位錯誤！"
	MessageInvalidSteps         = "步驟欄位錯誤！"
	MessageCollectFailed        = "收藏失敗，查無此食譜！"
	MessageUncollectFailed      = "取消收藏失敗，查無此食譜！"
	MessageDeleteRecipeFailed   = "刪除失敗，查無此食譜 ID"
)

type (
	CreateRecipeRequest struct {
		Title          string                   `json:"title"`
		CoverImgURL    string                   `json:"coverImgUrl"`
		IsPublic       *bool                    `json:"isPublic"`
		Category       string                   `json:"category"`
		Tags           []string                 `json:"tags"`
		CookingTime    string                   `json:"cookingTime"`
		Description    string                   `json:"description"`
		Servings       *float64                 `json:"servings"`
		Ingredients    []entities.Ingredient    `json:"ingredients"`
		NutritionFacts *entities.NutritionFacts `json:"nutritionFacts"`
		Steps          []entities.Step          `json:"steps"`
		Note           *string                  `json:"note"`
	}

	UpdateRecipeRequest struct {
		Title          string                   `json:"title"`
		CoverImgURL    string                   `json:"coverImgUrl"`
		IsPublic       *bool                    `json:"isPublic"`
		Category       string                   `json:"category"`
		Tags           []string                 `json:"tags"`
		CookingTime    string                   `json:"cookingTime"`
		Description    string                   `json:"description"`
		Servings       *float64                 `json:"servings"`
		Ingredients    []entities.Ingredient    `json:"ingredients"`
		NutritionFacts *entities.NutritionFacts `json:"nutritionFacts"`
		Steps          []entities.Step          `json:"steps"`
		Note           *string                  `json:"note"`
	}

	// RecipeListQuery carries the public-listing filters. Keyword is a plain
	// substring, Tags an all-of set; both optional.
	RecipeListQuery struct {
		Sort     string
		Page     int
		PerPage  int
		Category string
		Keyword  string
		Tags     []string
	}

	CollectResponse struct {
		RecipeID string `json:"recipeId"`
		UserID   string `json:"userId"`
	}
)
