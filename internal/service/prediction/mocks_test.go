package prediction

import (
	"context"
	"sync"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/inference"
)

var _ classifier = &classifierMock{}

type classifierMock struct {
	PredictFunc  func(ctx context.Context, features []float64) (int, error)
	ContractFunc func() inference.Contract

	calls struct {
		Predict []struct {
			Features []float64
		}
	}
	lockPredict sync.RWMutex
}

func (mock *classifierMock) Predict(ctx context.Context, features []float64) (int, error) {
	if mock.PredictFunc == nil {
		panic("classifierMock.PredictFunc: method is nil but classifier.Predict was just called")
	}
	mock.lockPredict.Lock()
	mock.calls.Predict = append(mock.calls.Predict, struct{ Features []float64 }{features})
	mock.lockPredict.Unlock()
	return mock.PredictFunc(ctx, features)
}

func (mock *classifierMock) PredictCalls() []struct{ Features []float64 } {
	mock.lockPredict.RLock()
	defer mock.lockPredict.RUnlock()
	return mock.calls.Predict
}

func (mock *classifierMock) Contract() inference.Contract {
	if mock.ContractFunc == nil {
		panic("classifierMock.ContractFunc: method is nil but classifier.Contract was just called")
	}
	return mock.ContractFunc()
}

var _ recordRepo = &recordRepoMock{}

type recordRepoMock struct {
	CreateVitalsFunc func(ctx context.Context, rec domain.VitalsRecord) (domain.VitalsRecord, error)
	CreateCTGFunc    func(ctx context.Context, rec domain.CTGRecord) (domain.CTGRecord, error)

	calls struct {
		CreateVitals []struct{ Rec domain.VitalsRecord }
		CreateCTG    []struct{ Rec domain.CTGRecord }
	}
	lockCreateVitals sync.RWMutex
	lockCreateCTG    sync.RWMutex
}

func (mock *recordRepoMock) CreateVitals(ctx context.Context, rec domain.VitalsRecord) (domain.VitalsRecord, error) {
	if mock.CreateVitalsFunc == nil {
		panic("recordRepoMock.CreateVitalsFunc: method is nil but recordRepo.CreateVitals was just called")
	}
	mock.lockCreateVitals.Lock()
	mock.calls.CreateVitals = append(mock.calls.CreateVitals, struct{ Rec domain.VitalsRecord }{rec})
	mock.lockCreateVitals.Unlock()
	return mock.CreateVitalsFunc(ctx, rec)
}

func (mock *recordRepoMock) CreateVitalsCalls() []struct{ Rec domain.VitalsRecord } {
	mock.lockCreateVitals.RLock()
	defer mock.lockCreateVitals.RUnlock()
	return mock.calls.CreateVitals
}

func (mock *recordRepoMock) CreateCTG(ctx context.Context, rec domain.CTGRecord) (domain.CTGRecord, error) {
	if mock.CreateCTGFunc == nil {
		panic("recordRepoMock.CreateCTGFunc: method is nil but recordRepo.CreateCTG was just called")
	}
	mock.lockCreateCTG.Lock()
	mock.calls.CreateCTG = append(mock.calls.CreateCTG, struct{ Rec domain.CTGRecord }{rec})
	mock.lockCreateCTG.Unlock()
	return mock.CreateCTGFunc(ctx, rec)
}

func (mock *recordRepoMock) CreateCTGCalls() []struct{ Rec domain.CTGRecord } {
	mock.lockCreateCTG.RLock()
	defer mock.lockCreateCTG.RUnlock()
	return mock.calls.CreateCTG
}
