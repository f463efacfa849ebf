package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	appconfig "github.com/semmidev/pgvault/internal/config"
	"github.com/semmidev/pgvault/internal/domain"
)

type GDriveSink struct {
	service  *drive.Service
	folderID string
}

func NewGDrive(cfg *appconfig.StorageConfig) (*GDriveSink, error) {
	service, err := drive.NewService(context.Background(),
		option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &GDriveSink{
		service:  service,
		folderID: cfg.FolderID,
	}, nil
}

// Put uploads an artifact into the configured folder. Custom metadata
// fields become Drive appProperties.
func (g *GDriveSink) Put(ctx context.Context, key string, body []byte, meta domain.Metadata) error {
	file := &drive.File{
		Name:          key,
		Parents:       []string{g.folderID},
		MimeType:      meta.ContentType,
		AppProperties: meta.Fields,
	}

	_, err := g.service.Files.Create(file).
		Media(bytes.NewReader(body)).
		Context(ctx).
		Do()
	if err != nil {
		return &domain.StorageError{Op: "put", Cause: fmt.Errorf("upload to gdrive: %w", err)}
	}

	return nil
}

// List returns up to limit file names in the folder starting with the
// given prefix. Drive has no native prefix match, so it filters a
// contains query.
func (g *GDriveSink) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	query := fmt.Sprintf("'%s' in parents and name contains '%s' and trashed=false",
		g.folderID, prefix)

	fileList, err := g.service.Files.List().
		Q(query).
		Fields("files(id, name)").
		PageSize(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Cause: fmt.Errorf("list gdrive files: %w", err)}
	}

	files := make([]string, 0, len(fileList.Files))
	for _, file := range fileList.Files {
		if strings.HasPrefix(file.Name, prefix) {
			files = append(files, file.Name)
		}
	}

	return files, nil
}
