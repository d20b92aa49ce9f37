package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"villagepulse-main/internal/feedback"
	"villagepulse-main/internal/kafka"
	"villagepulse-main/internal/middleware"
	"villagepulse-main/internal/mocks"
	"villagepulse-main/internal/session"
	myErr "villagepulse-main/internal/types/errors"
	"villagepulse-main/internal/user"
	"villagepulse-main/internal/village"
	"villagepulse-main/internal/vote"
	"villagepulse-main/internal/weight"
)

// Стабы зависимостей калькулятора веса

type stubUsers struct {
	users map[string]*user.User
}

func (s *stubUsers) Info(userID string) (*user.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, myErr.ErrNotFound
	}
	return u, nil
}

type stubFeedback struct {
	items map[string]*feedback.Feedback
}

func (s *stubFeedback) GetByID(ctx context.Context, id string) (*feedback.Feedback, error) {
	f, ok := s.items[id]
	if !ok {
		return nil, myErr.ErrNotFound
	}
	return f, nil
}

type stubVillages struct{}

func (s *stubVillages) GetByID(id string) (*village.Village, error) {
	return nil, myErr.ErrNotFound
}

type stubPanels struct{}

func (s *stubPanels) HasActiveMembership(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

// fakeProducer запоминает отправленные события
type fakeProducer struct {
	events []kafka.Event
}

func (f *fakeProducer) SendEvent(ctx context.Context, event kafka.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func newTestHandler(t *testing.T, voteRepo vote.VoteRepo, producer kafka.EventProducer) *VoteHandler {
	t.Helper()
	logger := zap.NewNop().Sugar()

	calc := weight.NewCalculator(
		weight.DefaultConfig(),
		&stubUsers{users: map[string]*user.User{
			"u-1": {ID: "u-1", Role: user.RoleUser},
		}},
		&stubFeedback{items: map[string]*feedback.Feedback{
			"fb-1": {ID: "fb-1", Title: "Dark theme support"},
		}},
		&stubVillages{},
		&stubPanels{},
		logger,
	)

	agg := vote.NewAggregator(voteRepo, calc, logger)

	return NewVoteHandler(logger, voteRepo, calc, agg, producer)
}

func authRequest(method, target, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := middleware.ContextWithSession(req.Context(), &session.Session{
		ID:     "sess-1",
		UserID: userID,
	})
	return req.WithContext(ctx)
}

func serveVote(handler *VoteHandler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r := mux.NewRouter()
	r.HandleFunc("/feedback/{id}/vote", handler.Cast).Methods(http.MethodPost)
	r.HandleFunc("/feedback/{id}/vote", handler.Retract).Methods(http.MethodDelete)
	r.HandleFunc("/feedback/{id}/votes", handler.Stats).Methods(http.MethodGet)
	r.ServeHTTP(rr, req)
	return rr
}

func TestVoteHandler_Cast_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	producer := &fakeProducer{}
	handler := newTestHandler(t, mockVotes, producer)

	mockVotes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, v *vote.Vote) (*vote.Vote, error) {
			// Вес голоса USER за фидбек без деревни и без панели = 1.0
			assert.Equal(t, 1.0, v.Weight)
			v.CreatedAt = time.Now()
			return v, nil
		})

	mockVotes.EXPECT().
		ListByFeedback(gomock.Any(), "fb-1").
		Return([]vote.Vote{
			{ID: "v-1", FeedbackID: "fb-1", Weight: 1.0, CreatedAt: time.Now()},
		}, nil)

	rr := serveVote(handler, authRequest(http.MethodPost, "/feedback/fb-1/vote", "u-1"))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 1, len(producer.events))
	assert.Equal(t, kafka.VoteCast, producer.events[0].Type)
	assert.Equal(t, "fb-1", producer.events[0].FeedbackID)
}

func TestVoteHandler_Cast_AlreadyVoted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	producer := &fakeProducer{}
	handler := newTestHandler(t, mockVotes, producer)

	mockVotes.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, myErr.ErrAlreadyVoted)

	rr := serveVote(handler, authRequest(http.MethodPost, "/feedback/fb-1/vote", "u-1"))

	assert.Equal(t, http.StatusConflict, rr.Code)
	// Событие не отправляется при отклоненном голосе
	assert.Equal(t, 0, len(producer.events))
}

func TestVoteHandler_Cast_NoAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	handler := newTestHandler(t, mockVotes, &fakeProducer{})

	req := httptest.NewRequest(http.MethodPost, "/feedback/fb-1/vote", nil)
	rr := serveVote(handler, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestVoteHandler_Cast_FeedbackNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	handler := newTestHandler(t, mockVotes, &fakeProducer{})

	// fb-missing нет в стабе фидбеков, BaseWeight вернет ErrNotFound
	rr := serveVote(handler, authRequest(http.MethodPost, "/feedback/fb-missing/vote", "u-1"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVoteHandler_Retract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	producer := &fakeProducer{}
	handler := newTestHandler(t, mockVotes, producer)

	mockVotes.EXPECT().
		Delete(gomock.Any(), "fb-1", "u-1").
		Return(nil)

	rr := serveVote(handler, authRequest(http.MethodDelete, "/feedback/fb-1/vote", "u-1"))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 1, len(producer.events))
	assert.Equal(t, kafka.VoteRetracted, producer.events[0].Type)
}

func TestVoteHandler_Retract_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	handler := newTestHandler(t, mockVotes, &fakeProducer{})

	mockVotes.EXPECT().
		Delete(gomock.Any(), "fb-1", "u-1").
		Return(myErr.ErrVoteNotFound)

	rr := serveVote(handler, authRequest(http.MethodDelete, "/feedback/fb-1/vote", "u-1"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVoteHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockVotes := mocks.NewMockVoteRepo(ctrl)
	handler := newTestHandler(t, mockVotes, &fakeProducer{})

	mockVotes.EXPECT().
		ListByFeedback(gomock.Any(), "fb-1").
		Return([]vote.Vote{
			{ID: "v-1", FeedbackID: "fb-1", Weight: 2.0, CreatedAt: time.Now()},
			{ID: "v-2", FeedbackID: "fb-1", Weight: 1.0, CreatedAt: time.Now()},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/feedback/fb-1/votes", nil)
	rr := serveVote(handler, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
