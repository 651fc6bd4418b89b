package domain

var (
	MessageInvalidTagID    = "標籤 ID 錯誤！"
	MessageTagNotFound     = "查無此標籤！"
	MessageInvalidTagTitle = "標籤標題需介於 1 到 10 個字元之間！"
	MessageDeleteTagFailed = "刪除失敗，查無此標籤"
)

type (
	CreateTagRequest struct {
		Title string `json:"title"`
	}

	UpdateTagRequest struct {
		Title string `json:"title"`
	}
)
