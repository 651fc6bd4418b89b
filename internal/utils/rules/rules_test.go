package rules

import (
	"strings"
	"testing"

	"secret-recipe-backend/entities"
)

func TestCheck_FirstFailureWins(t *testing.T) {
	err := Check([]Rule{
		{Failed: false, Message: "first"},
		{Failed: true, Message: "second"},
		{Failed: false, Message: "third"},
		{Failed: true, Message: "fourth"},
	})
	if err == nil {
		t.Fatal("Check() should fail")
	}
	if err.Error() != "second" {
		t.Errorf("Check() = %q, want the first failed message %q", err.Error(), "second")
	}
}

func TestCheck_AllPass(t *testing.T) {
	if err := Check([]Rule{{Message: "a"}, {Message: "b"}}); err != nil {
		t.Errorf("Check() = %v, want nil", err)
	}
}

func TestCheck_EmptyList(t *testing.T) {
	if err := Check(nil); err != nil {
		t.Errorf("Check(nil) = %v, want nil", err)
	}
}

func TestValidString(t *testing.T) {
	cases := []struct {
		value    string
		min, max int
		want     bool
	}{
		{"ab", 2, 10, true},
		{"a", 2, 10, false},
		{"  ab  ", 2, 10, true},
		{"   ", 1, 10, false},
		{strings.Repeat("x", 11), 2, 10, false},
		{"中文字元試驗", 2, 10, true},
		{"中文字元試驗中文字元試驗", 2, 10, false},
	}
	for _, tc := range cases {
		if got := ValidString(tc.value, tc.min, tc.max); got != tc.want {
			t.Errorf("ValidString(%q, %d, %d) = %v, want %v", tc.value, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	cases := map[string]bool{
		"abc12345":                        true,
		"12345678":                        false,
		"abcdefgh":                        false,
		"a1":                              false,
		"abc123" + strings.Repeat("x", 30): false,
		"P@ssw0rd":                        true,
	}
	for pw, want := range cases {
		if got := ValidPassword(pw); got != want {
			t.Errorf("ValidPassword(%q) = %v, want %v", pw, got, want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com":      true,
		"first.last@mail.co.uk": true,
		"no-at-sign":            false,
		"a@b":                   false,
		"":                      false,
	}
	for email, want := range cases {
		if got := ValidEmail(email); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestValidURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/a.png": true,
		"http://example.com":        true,
		"ftp://example.com":         false,
		"example.com":               false,
		"":                          false,
	}
	for raw, want := range cases {
		if got := ValidURL(raw); got != want {
			t.Errorf("ValidURL(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestValidCookingTime(t *testing.T) {
	for _, ct := range entities.CookingTimes {
		if !ValidCookingTime(ct) {
			t.Errorf("ValidCookingTime(%q) = false, want true", ct)
		}
	}
	if ValidCookingTime("45 分鐘") {
		t.Error("ValidCookingTime should reject values outside the fixed set")
	}
}

func TestValidIngredients(t *testing.T) {
	if ValidIngredients(nil) {
		t.Error("empty ingredient list must be invalid")
	}
	ok := []entities.Ingredient{{IngredientName: "糖", IngredientQty: "10 克"}}
	if !ValidIngredients(ok) {
		t.Error("well-formed ingredient list must be valid")
	}
	missingQty := []entities.Ingredient{{IngredientName: "糖"}}
	if ValidIngredients(missingQty) {
		t.Error("ingredient without quantity must be invalid")
	}
}

func TestValidSteps(t *testing.T) {
	if ValidSteps(nil) {
		t.Error("empty step list must be invalid")
	}
	ok := []entities.Step{{StepOrder: 1, StepContent: "煮沸"}}
	if !ValidSteps(ok) {
		t.Error("well-formed step list must be valid")
	}
	zeroOrder := []entities.Step{{StepOrder: 0, StepContent: "煮沸"}}
	if ValidSteps(zeroOrder) {
		t.Error("step order below 1 must be invalid")
	}
}

func TestValidNutritionFacts(t *testing.T) {
	if ValidNutritionFacts(nil) {
		t.Error("nil nutrition facts must be invalid")
	}
	ok := &entities.NutritionFacts{Calories: 100, Protein: 2, TotalFat: 1, TotalCarb: 20, Sodium: 30, Sugar: 15}
	if !ValidNutritionFacts(ok) {
		t.Error("non-negative nutrition facts must be valid")
	}
	negative := &entities.NutritionFacts{Calories: -1}
	if ValidNutritionFacts(negative) {
		t.Error("negative field must be invalid")
	}
}

func TestValidGenderAndImageType(t *testing.T) {
	for _, g := range []string{"secret", "male", "female"} {
		if !ValidGender(g) {
			t.Errorf("ValidGender(%q) = false", g)
		}
	}
	if ValidGender("other") {
		t.Error("ValidGender should reject unknown values")
	}
	for _, it := range []string{"avatar", "photo", "icon"} {
		if !ValidImageType(it) {
			t.Errorf("ValidImageType(%q) = false", it)
		}
	}
	if ValidImageType("banner") {
		t.Error("ValidImageType should reject unknown values")
	}
}

func TestEmptyBody(t *testing.T) {
	empty := []string{"", "   ", "{}", " {} ", "null"}
	for _, body := range empty {
		if !EmptyBody([]byte(body)) {
			t.Errorf("EmptyBody(%q) = false", body)
		}
	}
	if EmptyBody([]byte(`{"title":"家常菜"}`)) {
		t.Error("EmptyBody should accept a body with fields")
	}
}
