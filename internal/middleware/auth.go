package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"villagepulse-main/internal/session"
	myErr "villagepulse-main/internal/types/errors"
)

type SessKey string

var sessKey SessKey = "sessionKey"

func Auth(sm *session.SessionRepository, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Проверка сессии пользователя
			sess, err := sm.CheckSession(r)
			if err != nil {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			// Добавляем сессию в контекст и передаем дальше
			ctx := ContextWithSession(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	// создаем новый контекст с нашим ключом и сессией
	return context.WithValue(ctx, sessKey, s)
}

// GetSessionFromContext достает сессию, положенную Auth-мидлварью
func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessKey).(*session.Session)
	return s, ok
}
