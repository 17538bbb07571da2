package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/logging"
)

const lessonsCollection = "lessons"

// EnrollRequest is the course enrollment form.
type EnrollRequest struct {
	Title       string
	Description string
	Subject     string
}

// LessonService lists and enrolls courses stored in the DataStore.
type LessonService interface {
	// List returns lessons, newest first.
	List(ctx context.Context) ([]models.Lesson, error)
	// Enroll adds a course. Title is required; all fields are trimmed.
	Enroll(ctx context.Context, req EnrollRequest) error
}

type lessonService struct {
	store client.DataStore
	log   logging.Logger
}

// NewLessonService constructs a LessonService over the given store.
func NewLessonService(store client.DataStore, log logging.Logger) LessonService {
	if log == nil {
		log = logging.Nop()
	}
	return &lessonService{store: store, log: log}
}

func (s *lessonService) List(ctx context.Context) ([]models.Lesson, error) {
	records, err := s.store.Query(ctx, lessonsCollection, nil, &client.Order{Column: "created_at", Descending: true})
	if err != nil {
		s.log.Warn(ctx, "list lessons failed", "error", err)
		return nil, classify(err)
	}

	lessons, err := client.DecodeRecords[models.Lesson](records)
	if err != nil {
		return nil, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, nil
}

func (s *lessonService) Enroll(ctx context.Context, req EnrollRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("title", "Title is required")
	}

	rec := client.Record{
		"title":       title,
		"description": strings.TrimSpace(req.Description),
		"subject":     strings.TrimSpace(req.Subject),
	}
	if err := s.store.Insert(ctx, lessonsCollection, rec); err != nil {
		s.log.Warn(ctx, "enroll failed", "error", err)
		return classify(err)
	}

	s.log.Info(ctx, "course enrolled", "title", title)
	return nil
}
