package domain

var (
	MessageInvalidImageID    = "圖片 ID 錯誤！"
	MessageImageNotFound     = "查無此圖片！"
	MessageInvalidImageType  = "圖片類型錯誤！"
	MessageNoImageUploaded   = "尚未上傳圖片！"
	MessageUploadFailed      = "上傳失敗"
	MessageDeleteImageFailed = "刪除失敗，查無此圖片"
)

type UploadImageResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
}
