package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Field validators are pure functions returning a human-readable error string,
// empty on success. Step validators aggregate them into error lists.

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	AgeBrackets        = []string{"18_29", "30_39", "40_49", "50_plus"}
	PrimaryGoalChoices = []string{"lose_weight", "gain_muscle", "get_shredded"}
	Physiques          = []string{"athlete", "hero", "bodybuilder"}
	ViewTypes          = []string{"front", "rear", "side_left", "side_right", "other"}
	DietTypes          = []string{"vegetarian", "vegan", "keto", "mediterranean", "none"}
	WaterIntakes       = []string{"coffee_only", "lt_2_glasses", "2_6_glasses", "7_10_glasses", "gt_10_glasses"}
	SugarBands         = []string{"low", "mid", "high"}
	WorkoutPlaces      = []string{"home", "gym"}
)

const (
	HeightMinCm = 50
	HeightMaxCm = 300
	WeightMinKg = 20
	WeightMaxKg = 500
)

func Required(value, fieldName string) string {
	if strings.TrimSpace(value) == "" {
		return fieldName + " is required"
	}
	return ""
}

func RequiredList(values []string, fieldName string) string {
	if len(values) == 0 {
		return fieldName + " is required"
	}
	return ""
}

func RequiredNumber(value float64, fieldName string) string {
	if value == 0 {
		return fieldName + " is required"
	}
	return ""
}

func Email(email string) string {
	if email == "" {
		return "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

func PhoneNumber(phone string) string {
	if phone == "" {
		return "Phone number is required"
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 || digits > 15 {
		return "Please enter a valid phone number (10-15 digits)"
	}
	return ""
}

func NumberRange(value, min, max float64, fieldName string) string {
	if value < min {
		return fmt.Sprintf("%s must be at least %g", fieldName, min)
	}
	if value > max {
		return fmt.Sprintf("%s must be no more than %g", fieldName, max)
	}
	return ""
}

func Height(heightCm float64) string {
	if heightCm < HeightMinCm || heightCm > HeightMaxCm {
		return fmt.Sprintf("Please enter a valid height between %dcm and %dcm", HeightMinCm, HeightMaxCm)
	}
	return ""
}

func Weight(weightKg float64) string {
	if weightKg < WeightMinKg || weightKg > WeightMaxKg {
		return fmt.Sprintf("Please enter a valid weight between %dkg and %dkg", WeightMinKg, WeightMaxKg)
	}
	return ""
}

func Membership(value string, allowed []string, fieldName string) string {
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return "Please select a valid " + fieldName
}

func AgeBracket(bracket string) string {
	return Membership(bracket, AgeBrackets, "age bracket")
}

func PrimaryGoal(goal string) string {
	return Membership(goal, PrimaryGoalChoices, "primary goal")
}

func ViewType(view string) string {
	return Membership(view, ViewTypes, "view type")
}

// FileOptions constrains uploaded file size and type. AllowedTypes entries
// are extensions ("pdf") or MIME prefixes ("image/").
type FileOptions struct {
	MaxSizeMB    float64
	AllowedTypes []string
}

func File(filename string, size int64, contentType string, opts FileOptions) string {
	maxMB := opts.MaxSizeMB
	if maxMB == 0 {
		maxMB = 5
	}
	sizeMB := float64(size) / (1024 * 1024)
	if sizeMB > maxMB {
		return fmt.Sprintf("File size must be less than %gMB. Current size: %.2fMB", maxMB, sizeMB)
	}
	if len(opts.AllowedTypes) == 0 {
		return ""
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	mime := strings.ToLower(contentType)
	for _, t := range opts.AllowedTypes {
		t = strings.ToLower(t)
		if t == ext || t == mime {
			return ""
		}
		if strings.HasSuffix(t, "/") && strings.HasPrefix(mime, t) {
			return ""
		}
		if t == "image/*" && strings.HasPrefix(mime, "image/") {
			return ""
		}
	}
	return "Invalid file type. Allowed types: " + strings.Join(opts.AllowedTypes, ", ")
}
