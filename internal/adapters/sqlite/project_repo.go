package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/curator/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
// The signature and path registries are reference data: read at startup,
// never written by the application.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListProjects retrieves every registered project signature.
func (r *ProjectRepository) ListProjects(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, client_id, platform_id, aliases, keywords, path_fragments, weight FROM projects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ProjectRecord
	for rows.Next() {
		var (
			rec                              secondary.ProjectRecord
			aliases, keywords, pathFragments string
		)
		err := rows.Scan(&rec.ID, &rec.Name, &rec.ClientID, &rec.PlatformID,
			&aliases, &keywords, &pathFragments, &rec.Weight)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		if err := decodeStrings(aliases, &rec.Aliases); err != nil {
			return nil, fmt.Errorf("failed to decode aliases for %s: %w", rec.ID, err)
		}
		if err := decodeStrings(keywords, &rec.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for %s: %w", rec.ID, err)
		}
		if err := decodeStrings(pathFragments, &rec.PathFragments); err != nil {
			return nil, fmt.Errorf("failed to decode path fragments for %s: %w", rec.ID, err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// ListPaths retrieves every registered project path.
func (r *ProjectRepository) ListPaths(ctx context.Context) ([]*secondary.ProjectPathRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT path, project_id, kind FROM project_paths ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to list project paths: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ProjectPathRecord
	for rows.Next() {
		var rec secondary.ProjectPathRecord
		if err := rows.Scan(&rec.Path, &rec.ProjectID, &rec.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan project path: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func decodeStrings(raw string, dest *[]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
