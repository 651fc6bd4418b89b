// Package rules implements the ordered validation-rule lists used by the
// handlers: every rule's condition is evaluated up front while the list is
// built, then Check reports the first failed rule's message.
package rules

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"secret-recipe-backend/entities"
)

type Rule struct {
	Failed  bool
	Message string
}

// ValidationError carries the user-facing message of the first failed rule;
// handlers surface it verbatim with a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Check scans the rule list in order and returns a ValidationError for the
// first failed rule, nil when all pass.
func Check(list []Rule) error {
	for _, r := range list {
		if r.Failed {
			return &ValidationError{Message: r.Message}
		}
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^\w+((-\w+)|(\.\w+))*@[A-Za-z0-9]+((\.|-)[A-Za-z0-9]+)*\.[A-Za-z]+$`)

// ValidString reports whether the trimmed value length is within [min, max].
func ValidString(value string, min, max int) bool {
	n := len([]rune(strings.TrimSpace(value)))
	return n >= min && n <= max
}

func ValidNumber(num, min, max float64) bool {
	return num >= min && num <= max
}

func ValidURL(raw string) bool {
	if !ValidString(raw, 1, 1000) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func ValidEmail(email string) bool {
	return ValidString(email, 1, 100) && emailPattern.MatchString(email)
}

// ValidPassword checks for 8-30 characters mixing at least one letter and one
// digit.
func ValidPassword(password string) bool {
	if !ValidString(password, 8, 30) {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func ValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func ValidGender(gender string) bool {
	return gender == entities.GenderSecret ||
		gender == entities.GenderMale ||
		gender == entities.GenderFemale
}

func ValidCookingTime(cookingTime string) bool {
	for _, t := range entities.CookingTimes {
		if cookingTime == t {
			return true
		}
	}
	return false
}

func ValidImageType(imageType string) bool {
	return imageType == entities.ImageTypeAvatar ||
		imageType == entities.ImageTypePhoto ||
		imageType == entities.ImageTypeIcon
}

// ValidIngredients requires a non-empty list whose entries all carry a name
// and a quantity string.
func ValidIngredients(ingredients []entities.Ingredient) bool {
	if len(ingredients) == 0 {
		return false
	}
	for _, ing := range ingredients {
		if !ValidString(ing.IngredientName, 1, 100) || !ValidString(ing.IngredientQty, 1, 100) {
			return false
		}
	}
	return true
}

// ValidSteps requires a non-empty list of steps with a positive order and
// non-empty content.
func ValidSteps(steps []entities.Step) bool {
	if len(steps) == 0 {
		return false
	}
	for _, s := range steps {
		if s.StepOrder < 1 || !ValidString(s.StepContent, 1, 1000) {
			return false
		}
	}
	return true
}

// ValidNutritionFacts requires the full fixed set of six fields, each >= 0.
func ValidNutritionFacts(facts *entities.NutritionFacts) bool {
	if facts == nil {
		return false
	}
	for _, v := range []float64{
		facts.Calories, facts.Protein, facts.TotalFat,
		facts.TotalCarb, facts.Sodium, facts.Sugar,
	} {
		if v < 0 {
			return false
		}
	}
	return true
}

// EmptyBody reports whether a request body carries no fields at all.
func EmptyBody(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return trimmed == "" || trimmed == "{}" || trimmed == "null"
}
