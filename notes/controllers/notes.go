// notes/controllers/notes.go
package controllers

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"notes/notes/sources/psql/dao"
	"notes/notes/sources/psql/models"
	"notes/notes/sources/realtime"
	"notes/notes/utils/apierror"
	"notes/notes/utils/logging"
	"notes/notes/utils/types"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const DefaultListLimit = 20

// Publisher receives notifications about created notes. Delivery is best
// effort and never affects the request that triggered it.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }

type NotesController struct {
	dao       *dao.NoteDAO
	publisher Publisher
	validate  *validator.Validate
}

// NewNotesController wires the DAO and the realtime publisher. A nil
// publisher disables notifications.
func NewNotesController(dao *dao.NoteDAO, publisher Publisher) *NotesController {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &NotesController{
		dao:       dao,
		publisher: publisher,
		validate:  newValidator(),
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return validate
}

func (c *NotesController) CreateNote(ctx context.Context, req types.NoteRequest) (*types.NoteResponse, error) {
	defer logging.LogDuration(ctx, "CreateNote")()
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}

	note := &models.Note{Text: *req.Text, Completed: *req.Completed}
	err := c.dao.Transaction(ctx, func(tx *dao.NoteDAO) error {
		return tx.CreateNote(ctx, note)
	})
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	c.notify(ctx, realtime.EventCreateNote, types.NoteCreatedEvent{ID: note.ID})
	return toNoteResponse(note), nil
}

func (c *NotesController) GetNote(ctx context.Context, id int64) (*types.NoteResponse, error) {
	note, err := c.dao.GetNoteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	if note == nil {
		return nil, apierror.NewNoteNotFoundError(id)
	}
	return toNoteResponse(note), nil
}

// ListNotes returns at most limit notes after skipping skip, in id order.
func (c *NotesController) ListNotes(ctx context.Context, params types.ListNotesParams) ([]types.NoteResponse, error) {
	if err := c.validateStruct(params); err != nil {
		return nil, err
	}

	notes, err := c.dao.ListNotes(ctx, params.Skip, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	resp := make([]types.NoteResponse, len(notes))
	for i := range notes {
		resp[i] = *toNoteResponse(&notes[i])
	}
	return resp, nil
}

func (c *NotesController) UpdateNote(ctx context.Context, id int64, req types.NoteRequest) (*types.NoteResponse, error) {
	defer logging.LogDuration(ctx, "UpdateNote")()
	if err := c.validateStruct(req); err != nil {
		return nil, err
	}

	var updated *models.Note
	err := c.dao.Transaction(ctx, func(tx *dao.NoteDAO) error {
		n, err := tx.UpdateNote(ctx, id, *req.Text, *req.Completed)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NewNoteNotFoundError(id)
		}
		updated, err = tx.GetNoteByID(ctx, id)
		if err != nil {
			return err
		}
		if updated == nil {
			return apierror.NewNoteNotFoundError(id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update note %d: %w", id, err)
	}
	return toNoteResponse(updated), nil
}

func (c *NotesController) DeleteNote(ctx context.Context, id int64) (*types.DeleteNoteResponse, error) {
	err := c.dao.Transaction(ctx, func(tx *dao.NoteDAO) error {
		n, err := tx.DeleteNote(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apierror.NewNoteNotFoundError(id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete note %d: %w", id, err)
	}
	return &types.DeleteNoteResponse{Message: fmt.Sprintf("Note with id %d deleted", id)}, nil
}

func (c *NotesController) validateStruct(v any) error {
	if err := c.validate.Struct(v); err != nil {
		if verr := apierror.FromValidationError(err); verr != nil {
			return verr
		}
		return err
	}
	return nil
}

// notify runs after commit. Failures and panics in the publisher are logged
// and swallowed.
func (c *NotesController) notify(ctx context.Context, event string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logging.ErrorLogger.Error("publisher panicked", zap.String("event", event), zap.Any("panic", r))
		}
	}()
	if err := c.publisher.Publish(context.WithoutCancel(ctx), event, payload); err != nil {
		logging.ErrorLogger.Error("failed to publish event", zap.String("event", event), zap.Error(err))
	}
}

func toNoteResponse(note *models.Note) *types.NoteResponse {
	return &types.NoteResponse{
		ID:        note.ID,
		Text:      note.Text,
		Completed: note.Completed,
	}
}
