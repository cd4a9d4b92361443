// notes/routes/notes.go
package routes

import (
	"net/http"
	"strconv"

	"notes/notes/controllers"
	"notes/notes/utils/apierror"
	"notes/notes/utils/types"

	"github.com/go-chi/chi/v5"
)

func noteID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "an integer")
	}
	return id, nil
}

func NotesRoutes(ctrl *controllers.NotesController) chi.Router {
	r := chi.NewRouter()

	// Create note
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.NoteRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		note, err := ctrl.CreateNote(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, note)
	})

	// List notes
	r.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
		skip, err := queryInt(r, "skip", 0)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		limit, err := queryInt(r, "limit", controllers.DefaultListLimit)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		notes, err := ctrl.ListNotes(r.Context(), types.ListNotesParams{Skip: skip, Limit: limit})
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return notes, http.StatusOK, nil
	}))

	// Get single note
	r.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := noteID(r)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		note, err := ctrl.GetNote(r.Context(), id)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return note, http.StatusOK, nil
	}))

	// Update note
	r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := noteID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var req types.NoteRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		note, err := ctrl.UpdateNote(r.Context(), id, req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, note)
	})

	// Delete note
	r.Delete("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := noteID(r)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		resp, err := ctrl.DeleteNote(r.Context(), id)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return resp, http.StatusOK, nil
	}))

	return r
}
