// notes/utils/types/note.go
package types

// NoteRequest is the body of create and update calls. Pointers tell a
// missing field apart from a zero value.
type NoteRequest struct {
	Text      *string `json:"text" validate:"required,max=255"`
	Completed *bool   `json:"completed" validate:"required"`
}

type NoteResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type DeleteNoteResponse struct {
	Message string `json:"message"`
}

// ListNotesParams holds the paging query of GET /notes/.
type ListNotesParams struct {
	Skip  int `validate:"gte=0"`
	Limit int `validate:"gte=0"`
}

// NoteCreatedEvent is the payload of the create_note realtime event.
type NoteCreatedEvent struct {
	ID int64 `json:"id"`
}
