package diet

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc func(ctx context.Context, s domain.DietSession) error
	ListFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.DietSession, error)
	GetFunc    func(ctx context.Context, userID, id uuid.UUID) (*domain.DietSession, error)
	DeleteFunc func(ctx context.Context, userID, id uuid.UUID) error

	calls struct {
		Create []struct{ S domain.DietSession }
		Delete []struct{ UserID, ID uuid.UUID }
	}
	lockCreate sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *sessionRepoMock) Create(ctx context.Context, s domain.DietSession) error {
	if mock.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ S domain.DietSession }{s})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *sessionRepoMock) CreateCalls() []struct{ S domain.DietSession } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *sessionRepoMock) List(ctx context.Context, userID uuid.UUID) ([]domain.DietSession, error) {
	if mock.ListFunc == nil {
		panic("sessionRepoMock.ListFunc: method is nil but sessionRepo.List was just called")
	}
	return mock.ListFunc(ctx, userID)
}

func (mock *sessionRepoMock) Get(ctx context.Context, userID, id uuid.UUID) (*domain.DietSession, error) {
	if mock.GetFunc == nil {
		panic("sessionRepoMock.GetFunc: method is nil but sessionRepo.Get was just called")
	}
	return mock.GetFunc(ctx, userID, id)
}

func (mock *sessionRepoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("sessionRepoMock.DeleteFunc: method is nil but sessionRepo.Delete was just called")
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ UserID, ID uuid.UUID }{userID, id})
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

func (mock *sessionRepoMock) DeleteCalls() []struct{ UserID, ID uuid.UUID } {
	mock.lockDelete.RLock()
	defer mock.lockDelete.RUnlock()
	return mock.calls.Delete
}

var _ planRepo = &planRepoMock{}

type planRepoMock struct {
	CreateFunc func(ctx context.Context, rec domain.DietPlanRecord) (domain.DietPlanRecord, error)

	calls struct {
		Create []struct{ Rec domain.DietPlanRecord }
	}
	lockCreate sync.RWMutex
}

func (mock *planRepoMock) Create(ctx context.Context, rec domain.DietPlanRecord) (domain.DietPlanRecord, error) {
	if mock.CreateFunc == nil {
		panic("planRepoMock.CreateFunc: method is nil but planRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Rec domain.DietPlanRecord }{rec})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *planRepoMock) CreateCalls() []struct{ Rec domain.DietPlanRecord } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

var _ generator = &generatorMock{}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, req llm.Request) (string, error)

	calls struct {
		Generate []struct{ Req llm.Request }
	}
	lockGenerate sync.RWMutex
}

func (mock *generatorMock) Generate(ctx context.Context, req llm.Request) (string, error) {
	if mock.GenerateFunc == nil {
		panic("generatorMock.GenerateFunc: method is nil but generator.Generate was just called")
	}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, struct{ Req llm.Request }{req})
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *generatorMock) GenerateCalls() []struct{ Req llm.Request } {
	mock.lockGenerate.RLock()
	defer mock.lockGenerate.RUnlock()
	return mock.calls.Generate
}
