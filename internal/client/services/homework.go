package services

import (
	"context"
	"fmt"
	"path"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/filex"
	"github.com/dmitrijs2005/zivohub/internal/logging"
	"github.com/google/uuid"
)

const (
	homeworkCollection    = "homework"
	submissionsCollection = "homework_submissions"
)

// AttachmentStore is object storage for submitted files.
type AttachmentStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// SubmitRequest identifies the assignment, the submitting student and the
// local file to attach.
type SubmitRequest struct {
	HomeworkID uuid.UUID
	StudentID  uuid.UUID
	Path       string
}

// HomeworkService lists assignments and submits attachments.
type HomeworkService interface {
	// List returns assignments ordered by due date. HomeworkAll (or "")
	// disables the status filter.
	List(ctx context.Context, status models.HomeworkStatus) ([]models.Homework, error)
	// Submit uploads the file and records the submission.
	Submit(ctx context.Context, req SubmitRequest) (*models.HomeworkSubmission, error)
}

type homeworkService struct {
	store       client.DataStore
	attachments AttachmentStore
	log         logging.Logger
}

// NewHomeworkService constructs a HomeworkService. attachments may be nil,
// in which case Submit is unavailable.
func NewHomeworkService(store client.DataStore, attachments AttachmentStore, log logging.Logger) HomeworkService {
	if log == nil {
		log = logging.Nop()
	}
	return &homeworkService{store: store, attachments: attachments, log: log}
}

// storageKey is a test seam.
var storageKey = func(homeworkID, studentID uuid.UUID, fileName string) string {
	return path.Join("homework", homeworkID.String(), studentID.String(), uuid.NewString()+"-"+fileName)
}

func (s *homeworkService) List(ctx context.Context, status models.HomeworkStatus) ([]models.Homework, error) {
	if status == "" {
		status = models.HomeworkAll
	}
	if !status.Valid() {
		return nil, invalid("status", fmt.Sprintf("Unknown status %q", status))
	}

	var filter client.Filter
	if status != models.HomeworkAll {
		filter = client.Filter{"status": string(status)}
	}

	records, err := s.store.Query(ctx, homeworkCollection, filter, &client.Order{Column: "due_date"})
	if err != nil {
		s.log.Warn(ctx, "list homework failed", "status", status, "error", err)
		return nil, classify(err)
	}

	items, err := client.DecodeRecords[models.Homework](records)
	if err != nil {
		return nil, fmt.Errorf("decode homework: %w", err)
	}
	return items, nil
}

func (s *homeworkService) Submit(ctx context.Context, req SubmitRequest) (*models.HomeworkSubmission, error) {
	if s.attachments == nil {
		return nil, ErrAttachmentsDisabled
	}
	if req.StudentID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	if req.HomeworkID == uuid.Nil {
		return nil, invalid("homework", "Please choose an assignment")
	}
	if req.Path == "" {
		return nil, invalid("file", "Please choose a file")
	}

	att, err := filex.ReadAttachment(req.Path, filex.MaxAttachmentSize)
	if err != nil {
		return nil, invalid("file", err.Error())
	}

	key := storageKey(req.HomeworkID, req.StudentID, att.Name)
	if err := s.attachments.Put(ctx, key, att.Data, att.ContentType); err != nil {
		s.log.Warn(ctx, "attachment upload failed", "homework", req.HomeworkID, "error", err)
		return nil, &ConnectivityError{Err: fmt.Errorf("upload attachment: %w", err)}
	}

	sub := &models.HomeworkSubmission{
		HomeworkID: req.HomeworkID,
		StudentID:  req.StudentID,
		StorageKey: key,
		FileName:   att.Name,
	}
	rec := client.Record{
		"homework_id": sub.HomeworkID.String(),
		"student_id":  sub.StudentID.String(),
		"storage_key": sub.StorageKey,
		"file_name":   sub.FileName,
	}
	if err := s.store.Insert(ctx, submissionsCollection, rec); err != nil {
		s.log.Warn(ctx, "record submission failed", "homework", req.HomeworkID, "error", err)
		return nil, classify(err)
	}

	s.log.Info(ctx, "homework submitted", "homework", req.HomeworkID, "bytes", len(att.Data))
	return sub, nil
}
