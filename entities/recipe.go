package entities

import (
	"time"

	"github.com/google/uuid"
)

var CookingTimes = []string{"0-15 分鐘", "15-30 分鐘", "30 分鐘以上", "60 分鐘以上"}

type Ingredient struct {
	IngredientName string `json:"ingredientName"`
	IngredientQty  string `json:"ingredientQty"`
}

type Step struct {
	StepOrder   int    `json:"stepOrder"`
	StepContent string `json:"stepContent"`
}

type NutritionFacts struct {
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	TotalFat  float64 `json:"totalFat"`
	TotalCarb float64 `json:"totalCarb"`
	Sodium    float64 `json:"sodium"`
	Sugar     float64 `json:"sugar"`
}

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title       string    `json:"title"`
	CoverImgURL string    `json:"coverImgUrl"`
	IsPublic    bool      `json:"isPublic"`
	// CategoryID is required on create but carries no DB-level foreign key:
	// deleting a category leaves recipes pointing at a dangling id.
	CategoryID     uuid.UUID      `gorm:"type:uuid" json:"category"`
	UserID         uuid.UUID      `gorm:"type:uuid" json:"user"`
	CookingTime    string         `json:"cookingTime"`
	Description    string         `json:"description"`
	Servings       float64        `json:"servings"`
	Ingredients    []Ingredient   `gorm:"serializer:json" json:"ingredients"`
	NutritionFacts NutritionFacts `gorm:"serializer:json" json:"nutritionFacts"`
	Steps          []Step         `gorm:"serializer:json" json:"steps"`
	Note           string         `json:"note"`
	CollectsCount  int            `gorm:"default:0" json:"collectsCount"`
	IsRecommended  bool           `gorm:"default:false" json:"isRecommended"`

	// Tags is loaded from the recipe_tags join table, not a column.
	Tags []uuid.UUID `gorm:"-" json:"tags"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

// Collect is one entry of a user's favorites set. The composite key makes the
// set-insert idempotent at the store level.
type Collect struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipeId"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"createdAt"`
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipeId"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"tagId"`
}
