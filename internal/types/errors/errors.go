package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal       = errors.New("database internal error")
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record already exists")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionIsExpired = errors.New("session is expired")
	ErrNoAuth           = errors.New("authorization required")

	ErrBadPassword = errors.New("bad password")
	ErrBadID       = errors.New("bad id")

	ErrAlreadyVoted     = errors.New("user has already voted for this feedback")
	ErrVoteNotFound     = errors.New("vote not found")
	ErrNotFoundFeedback = errors.New("can't find a feedback with this ID")
	ErrNotFoundPanel    = errors.New("can't find a panel with this ID")
	ErrTitleIsRequired  = errors.New("feedback title is required")
	ErrTitleIsTooLong   = errors.New("feedback title must be less than 200 characters")
	ErrBodyIsTooLong    = errors.New("feedback body must be less than 5000 characters")

	ErrInvalidJSONPayload = errors.New("invalid JSON payload")

	ErrIndexing = errors.New("indexing error")
	ErrSearch   = errors.New("search error")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
