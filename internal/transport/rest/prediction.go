package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/service/prediction"
)

type predictionService interface {
	PredictMaternal(ctx context.Context, input prediction.MaternalInput) (prediction.Result, error)
	PredictFetal(ctx context.Context, input prediction.FetalInput) (prediction.Result, error)
}

// PredictionHandler serves the risk classification endpoints.
type PredictionHandler struct {
	svc predictionService
	dec decoder
	log *slog.Logger
}

// NewPredictionHandler creates a PredictionHandler.
func NewPredictionHandler(svc predictionService, maxBodyBytes int64, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{svc: svc, dec: newDecoder(maxBodyBytes), log: logger.With("handler", "prediction")}
}

type maternalResponse struct {
	Prediction string `json:"prediction"`
}

type fetalResponse struct {
	Prediction int    `json:"prediction"`
	Status     string `json:"status"`
}

// persistFailure is returned when a prediction was computed but not stored.
type persistFailure struct {
	Error      string `json:"error"`
	Prediction any    `json:"prediction"`
}

// Maternal handles POST /predict_maternal.
func (h *PredictionHandler) Maternal(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := h.dec.decode(w, r, &body); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	values, errs := numberFields(body, domain.MaternalFeatureNames)
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	res, err := h.svc.PredictMaternal(r.Context(), prediction.MaternalInput{
		Age:          values["age"],
		SystolicBP:   values["systolic_bp"],
		DiastolicBP:  values["diastolic_bp"],
		BloodGlucose: values["blood_glucose"],
		BodyTemp:     values["body_temp"],
		HeartRate:    values["heart_rate"],
	})
	if err != nil {
		var perr *prediction.PersistError
		if errors.As(err, &perr) {
			h.persistFailed(w, r, perr, perr.Result.Label)
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, maternalResponse{Prediction: res.Label})
}

// Fetal handles POST /predict_fetal. The body is either
// {"features": [15 numbers]} or an object keyed by CTG feature name.
func (h *PredictionHandler) Fetal(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if err := h.dec.decode(w, r, &body); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input, err := fetalInput(body)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.svc.PredictFetal(r.Context(), input)
	if err != nil {
		var perr *prediction.PersistError
		if errors.As(err, &perr) {
			h.persistFailed(w, r, perr, perr.Result.Class)
			return
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fetalResponse{Prediction: res.Class, Status: res.Label})
}

func (h *PredictionHandler) persistFailed(w http.ResponseWriter, r *http.Request, perr *prediction.PersistError, pred any) {
	h.log.ErrorContext(r.Context(), "prediction not stored",
		slog.String("label", perr.Result.Label),
		slog.String("error", perr.Err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, persistFailure{
		Error:      "prediction could not be saved",
		Prediction: pred,
	})
}

func fetalInput(body map[string]json.RawMessage) (prediction.FetalInput, error) {
	if raw, ok := body["features"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return prediction.FetalInput{}, domain.NewValidationError("features", "must be an array of numbers")
		}
		features := make([]float64, 0, len(items))
		for _, item := range items {
			v, err := parseNumber(item)
			if err != nil || v == nil {
				return prediction.FetalInput{}, domain.NewValidationError("features", "must be an array of numbers")
			}
			features = append(features, *v)
		}
		return prediction.FetalInput{Features: features}, nil
	}

	values, errs := numberFields(body, domain.FetalFeatureNames)
	if len(errs) > 0 {
		return prediction.FetalInput{}, domain.NewValidationErrors(errs)
	}
	if len(values) == 0 {
		// Neither form present; the service reports the arity error.
		return prediction.FetalInput{}, nil
	}

	named := make(map[string]float64, len(values))
	for name, v := range values {
		if v != nil {
			named[name] = *v
		}
	}
	return prediction.FetalInput{Named: named}, nil
}
