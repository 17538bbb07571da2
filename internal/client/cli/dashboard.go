package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zivohub/internal/client/i18n"
	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/client/services"
	"github.com/google/uuid"
)

func (a *App) account() (*models.Account, bool) {
	s, ok := a.flow.Session()
	if !ok || s.Account == nil {
		return nil, false
	}
	return s.Account, true
}

func (a *App) requireLogin() (*models.Account, error) {
	acc, ok := a.account()
	if !ok {
		a.println(services.UserMessage(services.ErrNotAuthenticated))
		return nil, services.ErrNotAuthenticated
	}
	return acc, nil
}

func displayName(acc *models.Account) string {
	switch {
	case acc.Name != "":
		return acc.Name
	case acc.Email != "":
		return acc.Email
	default:
		return acc.Phone
	}
}

func (a *App) roleName(role string) string {
	switch role {
	case "tutor", "admin":
		return a.tr.T(role)
	default:
		return a.tr.T(models.RoleStudent)
	}
}

// shortID is the first block of a UUID, enough to tell list rows apart.
func shortID(id uuid.UUID) string {
	s := id.String()
	return s[:8]
}

// Dashboard greets the user and lists the main sections.
func (a *App) Dashboard(ctx context.Context) error {
	acc, err := a.requireLogin()
	if err != nil {
		return err
	}

	a.println(a.tr.T("greeting", "name", displayName(acc)), "-", a.roleName(acc.Role))
	if a.Mode() == ModeOffline {
		a.println("[" + a.tr.T("offline") + "]")
	}
	a.println(a.tr.T("continue_learning"))
	fmt.Fprintf(a.out, "  lessons   %s\n", a.tr.T("my_lessons"))
	fmt.Fprintf(a.out, "  homework  %s\n", a.tr.T("homework"))
	return nil
}

func (a *App) Lessons(ctx context.Context) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}

	lessons, err := a.lessons.List(ctx)
	if err != nil {
		return a.fail(ctx, "list lessons", err)
	}

	a.println(a.tr.T("my_lessons"))
	if len(lessons) == 0 {
		a.println(a.tr.T("no_lessons"))
		return nil
	}
	for _, l := range lessons {
		fmt.Fprintf(a.out, "  %s  %s (%s)  %s\n", shortID(l.ID), l.Title, l.Subject,
			a.tr.T("progress_complete", "progress", l.Progress))
	}
	return nil
}

func (a *App) Enroll(ctx context.Context) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Course title", a.out)
	if err != nil {
		return err
	}
	subject, err := getSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	err = a.lessons.Enroll(ctx, services.EnrollRequest{Title: title, Subject: subject, Description: description})
	if err != nil {
		return a.fail(ctx, "enroll", err)
	}

	a.println(a.tr.T("enroll_success"))
	return nil
}

// Homework lists assignments. An optional first argument filters by status.
func (a *App) Homework(ctx context.Context, args []string) error {
	if _, err := a.requireLogin(); err != nil {
		return err
	}

	status := models.HomeworkAll
	if len(args) > 0 {
		status = models.HomeworkStatus(strings.ToLower(args[0]))
	}

	items, err := a.homework.List(ctx, status)
	if err != nil {
		return a.fail(ctx, "list homework", err)
	}

	a.println(a.tr.T("homework"))
	a.println(a.tr.T("track_assignments"))
	if len(items) == 0 {
		a.println(a.tr.T("no_homework"))
		return nil
	}
	for _, h := range items {
		fmt.Fprintf(a.out, "  %s  %s (%s)  [%s]  %s\n", h.ID, h.Title, h.Subject,
			a.tr.T("status_"+string(h.Status)), a.tr.T("due", "date", h.DueDate))
	}
	return nil
}

// Submit uploads a file for an assignment: submit <homework id> <path>.
// Missing arguments are prompted for.
func (a *App) Submit(ctx context.Context, args []string) error {
	acc, err := a.requireLogin()
	if err != nil {
		return err
	}

	var rawID, path string
	if len(args) > 0 {
		rawID = args[0]
	} else if rawID, err = getSimpleText(a.reader, "Homework ID", a.out); err != nil {
		return err
	}
	if len(args) > 1 {
		path = strings.Join(args[1:], " ")
	} else if path, err = getSimpleText(a.reader, "File path", a.out); err != nil {
		return err
	}

	hwID, err := uuid.Parse(rawID)
	if err != nil {
		a.println("Invalid homework ID:", rawID)
		return err
	}

	sub, err := a.homework.Submit(ctx, services.SubmitRequest{HomeworkID: hwID, StudentID: acc.ID, Path: path})
	if err != nil {
		return a.fail(ctx, "submit homework", err)
	}

	a.println(a.tr.T("submission_saved", "file", sub.FileName))
	return nil
}

// Language shows the active and supported languages, or switches to the
// one named by the first argument.
func (a *App) Language(ctx context.Context, args []string) error {
	if len(args) == 0 {
		current := a.tr.Language()
		for _, tag := range i18n.Supported() {
			marker := " "
			if tag == current {
				marker = "*"
			}
			fmt.Fprintf(a.out, "%s %s  %s\n", marker, tag, a.tr.LanguageName(tag))
		}
		return nil
	}

	tag, err := a.tr.SetLanguage(args[0])
	if err != nil {
		a.println(err.Error())
		return err
	}
	a.log.Debug(ctx, "language changed", "language", tag.String())
	a.println(a.tr.T("language_changed", "language", a.tr.LanguageName(tag)))
	return nil
}
