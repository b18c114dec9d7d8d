package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"rollcall/internal/config"
)

type fakeDrive struct {
	folderName  string
	createdName string
	appendBody  map[string]any
	appendQuery string
}

func newTestService(t *testing.T, fake *fakeDrive) *Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if !strings.Contains(r.URL.Query().Get("q"), "application/vnd.google-apps.folder") {
				t.Errorf("folder list query = %q", r.URL.Query().Get("q"))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"files": []map[string]string{
					{"id": "folder-1", "name": fake.folderName},
				},
			})
		case http.MethodPost:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			fake.createdName, _ = body["name"].(string)
			if body["mimeType"] != spreadsheetMimeType {
				t.Errorf("mimeType = %v", body["mimeType"])
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "sheet-1"})
		default:
			http.Error(w, "method", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/files/sheet-1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"webViewLink": "https://docs.example/sheet-1",
		})
	})
	mux.HandleFunc("/v4/spreadsheets/sheet-1/values/A1:append", func(w http.ResponseWriter, r *http.Request) {
		fake.appendQuery = r.URL.Query().Get("valueInputOption")
		_ = json.NewDecoder(r.Body).Decode(&fake.appendBody)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc, err := NewService(context.Background(), config.Google{DriveFolder: fake.folderName}, nil,
		option.WithEndpoint(server.URL),
		option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestUploadCreatesSheetInFolder(t *testing.T) {
	fake := &fakeDrive{folderName: "Attendance Reports"}
	svc := newTestService(t, fake)

	values := [][]any{
		{"Meeting ID", "Name", "2020-08-01", "Average", "LastFour"},
		{"500", "Weekly", float64(1), float64(1), float64(1)},
	}
	link, err := svc.Upload(context.Background(), "Attendance 2020-08", values)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if link != "https://docs.example/sheet-1" {
		t.Fatalf("link = %q", link)
	}
	if fake.createdName != "Attendance 2020-08" {
		t.Fatalf("created sheet name = %q", fake.createdName)
	}
	if fake.appendQuery != "RAW" {
		t.Fatalf("valueInputOption = %q, want RAW", fake.appendQuery)
	}
	if fake.appendBody["majorDimension"] != "ROWS" {
		t.Fatalf("majorDimension = %v, want ROWS", fake.appendBody["majorDimension"])
	}
	rows, ok := fake.appendBody["values"].([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("appended values = %v", fake.appendBody["values"])
	}
}

func TestFolderIDNotFound(t *testing.T) {
	fake := &fakeDrive{folderName: "Somewhere Else"}
	svc := newTestService(t, fake)

	_, err := svc.FolderID(context.Background(), "Missing Folder")
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("err = %v, want ErrFolderNotFound", err)
	}
}

func TestFolderIDMatchesByName(t *testing.T) {
	fake := &fakeDrive{folderName: "Reports"}
	svc := newTestService(t, fake)

	id, err := svc.FolderID(context.Background(), "Reports")
	if err != nil {
		t.Fatalf("FolderID: %v", err)
	}
	if id != "folder-1" {
		t.Fatalf("id = %q, want folder-1", id)
	}
}
