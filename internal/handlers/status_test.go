package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"ablage-ai/internal/handlers/mocks"
	"ablage-ai/internal/lifecycle"
)

func TestStatusHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	organizer := mocks.NewMockOrganizer(ctrl)
	handler := NewStatusHandler(organizer)

	organizer.EXPECT().Status(gomock.Any()).Return(lifecycle.Status{
		PendingCount:  2,
		TargetFolders: []string{"Bank", "Rechnungen"},
		InboxPath:     "/nas/eingang",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var status lifecycle.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.PendingCount != 2 {
		t.Errorf("pending_count = %d, want 2", status.PendingCount)
	}
	if len(status.TargetFolders) != 2 || status.TargetFolders[0] != "Bank" {
		t.Errorf("target_folders = %v", status.TargetFolders)
	}
}
