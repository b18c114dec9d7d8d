package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"rollcall/internal/config"
	"rollcall/internal/logging"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// ErrFolderNotFound indicates the configured Drive folder does not exist or
// is not visible to the service account.
var ErrFolderNotFound = errors.New("drive folder not found")

// Service wraps the Drive and Sheets APIs for report publishing.
type Service struct {
	drive  *drive.Service
	sheets *sheetsapi.Service
	folder string
	logger *slog.Logger
}

// NewService builds a Service from the Google section of the configuration.
// Extra client options are appended after the credential options so tests can
// point the clients at a local server.
func NewService(ctx context.Context, cfg config.Google, logger *slog.Logger, opts ...option.ClientOption) (*Service, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	driveOpts := make([]option.ClientOption, 0, len(opts)+2)
	sheetsOpts := make([]option.ClientOption, 0, len(opts)+2)
	if cfg.ServiceAccountFile != "" {
		driveOpts = append(driveOpts,
			option.WithCredentialsFile(cfg.ServiceAccountFile),
			option.WithScopes(drive.DriveScope))
		sheetsOpts = append(sheetsOpts,
			option.WithCredentialsFile(cfg.ServiceAccountFile),
			option.WithScopes(sheetsapi.SpreadsheetsScope))
	}
	driveOpts = append(driveOpts, opts...)
	sheetsOpts = append(sheetsOpts, opts...)

	driveSvc, err := drive.NewService(ctx, driveOpts...)
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	sheetsSvc, err := sheetsapi.NewService(ctx, sheetsOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return &Service{
		drive:  driveSvc,
		sheets: sheetsSvc,
		folder: cfg.DriveFolder,
		logger: logger,
	}, nil
}

// FolderID resolves a Drive folder name to its identifier.
func (s *Service) FolderID(ctx context.Context, name string) (string, error) {
	list, err := s.drive.Files.List().
		Q("mimeType='application/vnd.google-apps.folder'").
		Fields("files(id,name)").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("list drive folders: %w", err)
	}
	for _, file := range list.Files {
		if file.Name == name {
			return file.Id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrFolderNotFound, name)
}

// CreateSpreadsheet creates an empty spreadsheet inside the given folder and
// returns its file id.
func (s *Service) CreateSpreadsheet(ctx context.Context, title, folderID string) (string, error) {
	file, err := s.drive.Files.Create(&drive.File{
		Name:     title,
		Parents:  []string{folderID},
		MimeType: spreadsheetMimeType,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet %q: %w", title, err)
	}
	return file.Id, nil
}

// AppendValues writes the report rows into the spreadsheet starting at A1
// without any cell interpretation.
func (s *Service) AppendValues(ctx context.Context, spreadsheetID string, values [][]any) error {
	_, err := s.sheets.Spreadsheets.Values.Append(spreadsheetID, "A1", &sheetsapi.ValueRange{
		MajorDimension: "ROWS",
		Values:         values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append values to %s: %w", spreadsheetID, err)
	}
	return nil
}

// Link returns the spreadsheet's browser link.
func (s *Service) Link(ctx context.Context, spreadsheetID string) (string, error) {
	file, err := s.drive.Files.Get(spreadsheetID).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch link for %s: %w", spreadsheetID, err)
	}
	return file.WebViewLink, nil
}

// Upload publishes a full report: it resolves the configured folder, creates
// a spreadsheet with the given title, appends the rows, and returns the
// sheet's link.
func (s *Service) Upload(ctx context.Context, title string, values [][]any) (string, error) {
	folderID, err := s.FolderID(ctx, s.folder)
	if err != nil {
		return "", err
	}
	spreadsheetID, err := s.CreateSpreadsheet(ctx, title, folderID)
	if err != nil {
		return "", err
	}
	if err := s.AppendValues(ctx, spreadsheetID, values); err != nil {
		return "", err
	}
	link, err := s.Link(ctx, spreadsheetID)
	if err != nil {
		return "", err
	}
	s.logger.Info("report uploaded",
		logging.String("sheet", title),
		logging.String("link", link))
	return link, nil
}
