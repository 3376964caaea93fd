package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"ablage-ai/internal/handlers/mocks"
	"ablage-ai/internal/lifecycle"
)

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMoveHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	organizer := mocks.NewMockOrganizer(ctrl)
	handler := NewMoveHandler(organizer)

	organizer.EXPECT().
		ConfirmMove(gomock.Any(), lifecycle.MoveRequest{Filename: "rechnung.txt", Folder: "Rechnungen"}).
		Return(&lifecycle.MoveResult{
			Filename: "rechnung.txt",
			Folder:   "Rechnungen",
			DestPath: "/nas/ablage/Rechnungen/rechnung.txt",
		}, nil)

	rec := postJSON(t, handler, "/api/move", MoveRequest{Filename: "rechnung.txt", Folder: "Rechnungen"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp MoveResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.DestPath != "/nas/ablage/Rechnungen/rechnung.txt" {
		t.Errorf("dest_path = %q", resp.DestPath)
	}
}

func TestMoveHandlerNewFolderPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	organizer := mocks.NewMockOrganizer(ctrl)
	handler := NewMoveHandler(organizer)

	organizer.EXPECT().
		ConfirmMove(gomock.Any(), lifecycle.MoveRequest{
			Filename:   "flug.txt",
			Folder:     "Reisen / Flüge",
			IsNew:      true,
			FolderPath: "Reisen/Flüge",
		}).
		Return(&lifecycle.MoveResult{Filename: "flug.txt", Folder: "Reisen/Flüge", DestPath: "/nas/ablage/Reisen/Flüge/flug.txt"}, nil)

	rec := postJSON(t, handler, "/api/move", MoveRequest{
		Filename:   "flug.txt",
		Folder:     "Reisen / Flüge",
		IsNew:      true,
		FolderPath: "Reisen/Flüge",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestMoveHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		request    MoveRequest
		moveErr    error
		wantStatus int
	}{
		{
			name:       "unknown file",
			request:    MoveRequest{Filename: "nope.txt", Folder: "Rechnungen"},
			moveErr:    lifecycle.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid folder",
			request:    MoveRequest{Filename: "doc.txt", Folder: "Niemalsland"},
			moveErr:    lifecycle.ErrInvalidTarget,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "filesystem failure",
			request:    MoveRequest{Filename: "doc.txt", Folder: "Rechnungen"},
			moveErr:    errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			organizer := mocks.NewMockOrganizer(ctrl)
			handler := NewMoveHandler(organizer)

			organizer.EXPECT().ConfirmMove(gomock.Any(), gomock.Any()).Return(nil, tt.moveErr)

			rec := postJSON(t, handler, "/api/move", tt.request)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMoveHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"missing filename", `{"folder":"Rechnungen"}`},
		{"missing folder", `{"filename":"doc.txt"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			organizer := mocks.NewMockOrganizer(ctrl)
			handler := NewMoveHandler(organizer)

			req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
