package domain

import (
	"time"

	"github.com/google/uuid"
)

// DietOverview summarises daily targets.
type DietOverview struct {
	CaloriesPerDay string   `json:"calories_per_day"`
	KeyNutrients   []string `json:"key_nutrients"`
	FoodsToAvoid   []string `json:"foods_to_avoid"`
}

// Meal is a single named meal with its items.
type Meal struct {
	Name     string   `json:"name"`
	Calories string   `json:"calories,omitempty"`
	Items    []string `json:"items"`
}

// Meals is one day of eating.
type Meals struct {
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

// MealPlan is a named variant of a day's meals (e.g. "Balanced Plan").
type MealPlan struct {
	Type  string `json:"type"`
	Meals Meals  `json:"meals"`
}

// Supplement is a recommended supplement and why.
type Supplement struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Reason string `json:"reason"`
}

// DietPlan is the structured recommendation the clients render.
type DietPlan struct {
	Overview    DietOverview `json:"overview"`
	MealPlans   []MealPlan   `json:"meal_plans"`
	Tips        []string     `json:"tips"`
	Supplements []Supplement `json:"supplements"`
}

// IsComplete reports whether every section the clients depend on is present.
func (p *DietPlan) IsComplete() bool {
	if p == nil {
		return false
	}
	if p.Overview.CaloriesPerDay == "" || len(p.Overview.KeyNutrients) == 0 {
		return false
	}
	if len(p.MealPlans) == 0 || len(p.Tips) == 0 || len(p.Supplements) == 0 {
		return false
	}
	for _, mp := range p.MealPlans {
		m := mp.Meals
		if mp.Type == "" || len(m.Breakfast.Items) == 0 || len(m.Lunch.Items) == 0 || len(m.Dinner.Items) == 0 {
			return false
		}
	}
	return true
}

// DefaultDietPlan is served whenever generation fails or yields an
// incomplete document.
func DefaultDietPlan() DietPlan {
	return DietPlan{
		Overview: DietOverview{
			CaloriesPerDay: "2200-2500",
			KeyNutrients:   []string{"Folic Acid", "Iron", "Calcium", "Protein", "Omega-3", "Vitamin D"},
			FoodsToAvoid:   []string{"Raw fish", "Unpasteurized dairy", "High mercury fish", "Raw eggs", "Deli meats"},
		},
		MealPlans: []MealPlan{
			{
				Type: "Balanced Plan",
				Meals: Meals{
					Breakfast: Meal{
						Name:     "Nutritious Morning Start",
						Calories: "400",
						Items:    []string{"Whole grain cereal with milk", "Fresh berries", "Orange juice"},
					},
					Lunch: Meal{
						Name:     "Balanced Midday Meal",
						Calories: "500",
						Items:    []string{"Grilled chicken salad", "Whole wheat bread", "Mixed vegetables"},
					},
					Dinner: Meal{
						Name:     "Light Evening Meal",
						Calories: "450",
						Items:    []string{"Baked salmon", "Sweet potato", "Steamed broccoli"},
					},
					Snacks: []Meal{
						{Name: "Morning Snack", Items: []string{"Greek yogurt", "Almonds"}},
						{Name: "Afternoon Snack", Items: []string{"Apple slices", "Cheese"}},
					},
				},
			},
		},
		Tips: []string{
			"Stay hydrated by drinking 8-10 glasses of water daily",
			"Eat small, frequent meals to help with nausea",
			"Include a variety of colorful fruits and vegetables",
			"Choose whole grains over refined grains",
			"Limit caffeine to 200mg per day",
		},
		Supplements: []Supplement{
			{Name: "Prenatal Vitamin", Dosage: "1 tablet daily", Reason: "Comprehensive nutrition support"},
			{Name: "Folic Acid", Dosage: "400-800 mcg", Reason: "Prevents neural tube defects"},
			{Name: "Iron", Dosage: "27 mg daily", Reason: "Prevents anemia"},
		},
	}
}

// DietRequest holds the parameters a plan is generated from.
type DietRequest struct {
	Trimester         string  `json:"trimester"`
	Weight            float64 `json:"weight"`
	HealthConditions  string  `json:"health_conditions"`
	DietaryPreference string  `json:"dietary_preference"`
}

// DietSession is a single generated recommendation owned by a user.
type DietSession struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Request   DietRequest
	Plan      DietPlan
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DietPlanRecord is a plan produced by the one-off /diet_plan endpoint.
type DietPlanRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Request   DietRequest
	Plan      DietPlan
	CreatedAt time.Time
}
