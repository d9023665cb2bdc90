package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/service/chat"
	"github.com/heartmarshall/nova-backend/internal/service/diet"
	"github.com/heartmarshall/nova-backend/internal/service/doctor"
	"github.com/heartmarshall/nova-backend/internal/service/prediction"
)

var _ predictionService = &predictionServiceMock{}

type predictionServiceMock struct {
	PredictMaternalFunc func(ctx context.Context, input prediction.MaternalInput) (prediction.Result, error)
	PredictFetalFunc    func(ctx context.Context, input prediction.FetalInput) (prediction.Result, error)
}

func (mock *predictionServiceMock) PredictMaternal(ctx context.Context, input prediction.MaternalInput) (prediction.Result, error) {
	if mock.PredictMaternalFunc == nil {
		panic("predictionServiceMock.PredictMaternalFunc: method is nil but predictionService.PredictMaternal was just called")
	}
	return mock.PredictMaternalFunc(ctx, input)
}

func (mock *predictionServiceMock) PredictFetal(ctx context.Context, input prediction.FetalInput) (prediction.Result, error) {
	if mock.PredictFetalFunc == nil {
		panic("predictionServiceMock.PredictFetalFunc: method is nil but predictionService.PredictFetal was just called")
	}
	return mock.PredictFetalFunc(ctx, input)
}

var _ chatService = &chatServiceMock{}

type chatServiceMock struct {
	CreateSessionFunc func(ctx context.Context) (*domain.ChatSession, error)
	ListSessionsFunc  func(ctx context.Context, input chat.ListInput) ([]domain.ChatSession, error)
	GetSessionFunc    func(ctx context.Context, sessionID uuid.UUID) (*domain.ChatSession, error)
	DeleteSessionFunc func(ctx context.Context, sessionID uuid.UUID) error
	AppendMessageFunc func(ctx context.Context, input chat.SendInput) (chat.Reply, error)
	LatestHistoryFunc func(ctx context.Context) ([]domain.ChatMessage, error)
	SendLatestFunc    func(ctx context.Context, content string, messageID *uuid.UUID) (chat.Reply, error)
}

func (mock *chatServiceMock) CreateSession(ctx context.Context) (*domain.ChatSession, error) {
	if mock.CreateSessionFunc == nil {
		panic("chatServiceMock.CreateSessionFunc: method is nil but chatService.CreateSession was just called")
	}
	return mock.CreateSessionFunc(ctx)
}

func (mock *chatServiceMock) ListSessions(ctx context.Context, input chat.ListInput) ([]domain.ChatSession, error) {
	if mock.ListSessionsFunc == nil {
		panic("chatServiceMock.ListSessionsFunc: method is nil but chatService.ListSessions was just called")
	}
	return mock.ListSessionsFunc(ctx, input)
}

func (mock *chatServiceMock) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ChatSession, error) {
	if mock.GetSessionFunc == nil {
		panic("chatServiceMock.GetSessionFunc: method is nil but chatService.GetSession was just called")
	}
	return mock.GetSessionFunc(ctx, sessionID)
}

func (mock *chatServiceMock) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	if mock.DeleteSessionFunc == nil {
		panic("chatServiceMock.DeleteSessionFunc: method is nil but chatService.DeleteSession was just called")
	}
	return mock.DeleteSessionFunc(ctx, sessionID)
}

func (mock *chatServiceMock) AppendMessage(ctx context.Context, input chat.SendInput) (chat.Reply, error) {
	if mock.AppendMessageFunc == nil {
		panic("chatServiceMock.AppendMessageFunc: method is nil but chatService.AppendMessage was just called")
	}
	return mock.AppendMessageFunc(ctx, input)
}

func (mock *chatServiceMock) LatestHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	if mock.LatestHistoryFunc == nil {
		panic("chatServiceMock.LatestHistoryFunc: method is nil but chatService.LatestHistory was just called")
	}
	return mock.LatestHistoryFunc(ctx)
}

func (mock *chatServiceMock) SendLatest(ctx context.Context, content string, messageID *uuid.UUID) (chat.Reply, error) {
	if mock.SendLatestFunc == nil {
		panic("chatServiceMock.SendLatestFunc: method is nil but chatService.SendLatest was just called")
	}
	return mock.SendLatestFunc(ctx, content, messageID)
}

var _ dietService = &dietServiceMock{}

type dietServiceMock struct {
	GeneratePlanFunc  func(ctx context.Context, input diet.PlanInput) (domain.DietPlan, error)
	CreateSessionFunc func(ctx context.Context, input diet.PlanInput) (*domain.DietSession, error)
	ListSessionsFunc  func(ctx context.Context) ([]domain.DietSession, error)
	GetSessionFunc    func(ctx context.Context, id uuid.UUID) (*domain.DietSession, error)
	DeleteSessionFunc func(ctx context.Context, id uuid.UUID) error
}

func (mock *dietServiceMock) GeneratePlan(ctx context.Context, input diet.PlanInput) (domain.DietPlan, error) {
	if mock.GeneratePlanFunc == nil {
		panic("dietServiceMock.GeneratePlanFunc: method is nil but dietService.GeneratePlan was just called")
	}
	return mock.GeneratePlanFunc(ctx, input)
}

func (mock *dietServiceMock) CreateSession(ctx context.Context, input diet.PlanInput) (*domain.DietSession, error) {
	if mock.CreateSessionFunc == nil {
		panic("dietServiceMock.CreateSessionFunc: method is nil but dietService.CreateSession was just called")
	}
	return mock.CreateSessionFunc(ctx, input)
}

func (mock *dietServiceMock) ListSessions(ctx context.Context) ([]domain.DietSession, error) {
	if mock.ListSessionsFunc == nil {
		panic("dietServiceMock.ListSessionsFunc: method is nil but dietService.ListSessions was just called")
	}
	return mock.ListSessionsFunc(ctx)
}

func (mock *dietServiceMock) GetSession(ctx context.Context, id uuid.UUID) (*domain.DietSession, error) {
	if mock.GetSessionFunc == nil {
		panic("dietServiceMock.GetSessionFunc: method is nil but dietService.GetSession was just called")
	}
	return mock.GetSessionFunc(ctx, id)
}

func (mock *dietServiceMock) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteSessionFunc == nil {
		panic("dietServiceMock.DeleteSessionFunc: method is nil but dietService.DeleteSession was just called")
	}
	return mock.DeleteSessionFunc(ctx, id)
}

var _ doctorService = &doctorServiceMock{}

type doctorServiceMock struct {
	CreateProfileFunc func(ctx context.Context, input doctor.ProfileInput) (domain.DoctorProfile, error)
}

func (mock *doctorServiceMock) CreateProfile(ctx context.Context, input doctor.ProfileInput) (domain.DoctorProfile, error) {
	if mock.CreateProfileFunc == nil {
		panic("doctorServiceMock.CreateProfileFunc: method is nil but doctorService.CreateProfile was just called")
	}
	return mock.CreateProfileFunc(ctx, input)
}
