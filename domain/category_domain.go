package domain

var (
	MessageInvalidCategoryTitle = "分類標題需介於 1 到 10 個字元之間！"
	MessageDeleteCategoryFailed = "刪除失敗，查無此分類"
)

type (
	CreateCategoryRequest struct {
		Title          string `json:"title"`
		CategoryImgURL string `json:"categoryImgUrl"`
	}

	UpdateCategoryRequest struct {
		Title          string  `json:"title"`
		CategoryImgURL *string `json:"categoryImgUrl"`
	}
)
