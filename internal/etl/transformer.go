package etl

import (
	"go.uber.org/zap"

	"villagepulse-main/internal/feedback"
	"villagepulse-main/internal/types/elastic"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform - переводит документы из формата хранения в PostgreSQL в FeedbackDoc для хранения в ES
// Принимает массив Feedback, возвращает массив FeedbackDoc
func (t *Transformer) Transform(input []feedback.Feedback) []elastic.FeedbackDoc {
	docs := make([]elastic.FeedbackDoc, 0, len(input))
	for _, f := range input {
		docs = append(docs, elastic.FeedbackDoc{
			ID:        f.ID,
			Title:     f.Title,
			Body:      f.Body,
			VillageID: f.VillageID,
			State:     f.State,
		})
	}

	t.Logger.Infof("Transformed %d docs succesfully", len(input))

	return docs
}
