package domain

import (
	"time"

	"github.com/google/uuid"
)

// Health labels shared by the maternal and fetal models.
const (
	LabelNormal       = "Normal"
	LabelSuspect      = "Suspect"
	LabelPathological = "Pathological"
	LabelUnknown      = "Unknown"
)

// MaternalFeatureNames is the column order the maternal model was trained on.
var MaternalFeatureNames = []string{
	"age",
	"systolic_bp",
	"diastolic_bp",
	"blood_glucose",
	"body_temp",
	"heart_rate",
}

// FetalFeatureNames is the cardiotocography column order the fetal model was trained on.
var FetalFeatureNames = []string{
	"baseline_value",
	"accelerations",
	"fetal_movement",
	"uterine_contractions",
	"light_decelerations",
	"severe_decelerations",
	"prolongued_decelerations",
	"abnormal_short_term_variability",
	"mean_value_of_short_term_variability",
	"percentage_of_time_with_abnormal_long_term_variability",
	"mean_value_of_long_term_variability",
	"histogram_width",
	"histogram_min",
	"histogram_max",
	"histogram_number_of_peaks",
}

// MaternalVitals are the six measurements fed to the maternal risk model.
type MaternalVitals struct {
	Age          float64
	SystolicBP   float64
	DiastolicBP  float64
	BloodGlucose float64
	BodyTemp     float64
	HeartRate    float64
}

// Vector returns the vitals in MaternalFeatureNames order.
func (v MaternalVitals) Vector() []float64 {
	return []float64{v.Age, v.SystolicBP, v.DiastolicBP, v.BloodGlucose, v.BodyTemp, v.HeartRate}
}

// VitalsRecord is an immutable maternal prediction owned by a user.
type VitalsRecord struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Vitals        MaternalVitals
	Prediction    int
	PredictedRisk string
	CreatedAt     time.Time
}

// CTGRecord is an immutable fetal prediction owned by a user.
// Features are stored in FetalFeatureNames order.
type CTGRecord struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Features        []float64
	PredictedClass  int
	PredictedStatus string
	CreatedAt       time.Time
}
