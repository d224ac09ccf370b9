package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/dberrors"
)

// ProjectRepository handles database operations for projects, their
// members, markets, stars and links
type ProjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const projectColumns = `pr.id, pr.category, pr.name, pr.slogan, pr.description, pr.image_url, pr.created_at, pr.updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID, &project.Category, &project.Name, &project.Slogan,
		&project.Description, &project.ImageURL, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create inserts a new project inside q and returns its ID
func (r *ProjectRepository) Create(ctx context.Context, q Querier, project *models.Project) (int64, error) {
	query := `
		INSERT INTO projects (category, name, slogan, description, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		project.Category, project.Name, project.Slogan,
		project.Description, project.ImageURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating project: %w", err)
	}

	return id, nil
}

// GetByID retrieves a project with members, markets, links and star count
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects pr WHERE pr.id = $1`, projectColumns)

	project, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	if project.Members, err = r.GetMembers(ctx, id); err != nil {
		return nil, err
	}
	if project.Markets, err = r.GetMarkets(ctx, id); err != nil {
		return nil, err
	}
	if project.Links, err = r.GetLinks(ctx, id); err != nil {
		return nil, err
	}
	if project.StarCount, err = r.CountStars(ctx, id); err != nil {
		return nil, err
	}

	return project, nil
}

// List retrieves projects newest first, capped at limit
func (r *ProjectRepository) List(ctx context.Context, limit int) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects pr
		ORDER BY pr.id DESC
		LIMIT $1
	`, projectColumns)

	return r.queryProjects(ctx, query, limit)
}

// ListFiltered retrieves distinct projects matching any of the given
// categories and market names, capped at limit
func (r *ProjectRepository) ListFiltered(ctx context.Context, categories, markets []string, limit int) ([]models.Project, error) {
	base := squirrel.Select("DISTINCT " + projectColumns).
		From("projects pr").
		PlaceholderFormat(squirrel.Dollar)

	if len(categories) > 0 {
		base = base.Where(squirrel.Eq{"pr.category": categories})
	}
	if len(markets) > 0 {
		base = base.Join("project_markets pm ON pm.project_id = pr.id").
			Join("markets mk ON mk.id = pm.market_id").
			Where(squirrel.Eq{"mk.name": markets})
	}

	sql, args, err := base.OrderBy("pr.id DESC").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build filtered projects query: %w", err)
	}

	return r.queryProjects(ctx, sql, args...)
}

// ListByMember retrieves the projects a profile belongs to
func (r *ProjectRepository) ListByMember(ctx context.Context, profileID int64) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects pr
		JOIN project_members pm ON pm.project_id = pr.id
		WHERE pm.profile_id = $1
		ORDER BY pr.id DESC
	`, projectColumns)

	return r.queryProjects(ctx, query, profileID)
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, *project)
	}

	return projects, rows.Err()
}

// Update persists the editable project fields
func (r *ProjectRepository) Update(ctx context.Context, q Querier, project *models.Project) error {
	sql, args, err := r.sb.Update("projects").
		Set("category", project.Category).
		Set("name", project.Name).
		Set("slogan", project.Slogan).
		Set("image_url", project.ImageURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": project.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update project query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// UpdateDescription replaces the rich-text description blob
func (r *ProjectRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE projects SET description = $1, updated_at = NOW() WHERE id = $2`,
		description, id)
	if err != nil {
		return fmt.Errorf("error updating project description: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// Delete removes a project. Members, requests, markets, stars, links,
// discussions and their children go with it via ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// SetMarkets replaces the project's market set
func (r *ProjectRepository) SetMarkets(ctx context.Context, q Querier, projectID int64, marketIDs []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM project_markets WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("error clearing project markets: %w", err)
	}

	for _, marketID := range marketIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO project_markets (project_id, market_id) VALUES ($1, $2)`,
			projectID, marketID)
		if err != nil {
			return fmt.Errorf("error adding project market: %w", err)
		}
	}

	return nil
}

// GetMarkets retrieves the project's markets ordered by name
func (r *ProjectRepository) GetMarkets(ctx context.Context, projectID int64) ([]models.Market, error) {
	query := `
		SELECT mk.id, mk.name
		FROM markets mk
		JOIN project_markets pm ON pm.market_id = mk.id
		WHERE pm.project_id = $1
		ORDER BY mk.name
	`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project markets: %w", err)
	}
	defer rows.Close()

	markets := []models.Market{}
	for rows.Next() {
		var m models.Market
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("error scanning market row: %w", err)
		}
		markets = append(markets, m)
	}

	return markets, rows.Err()
}

// CreateMember adds a profile to a project inside q. A duplicate
// membership maps to ErrAlreadyMember via the unique constraint.
func (r *ProjectRepository) CreateMember(ctx context.Context, q Querier, member *models.ProjectMember) (int64, error) {
	query := `
		INSERT INTO project_members (project_id, profile_id, role)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, member.ProjectID, member.ProfileID, member.Role).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_members_project_id_profile_id_key") {
			return 0, apperrors.ErrAlreadyMember
		}
		return 0, fmt.Errorf("error creating project member: %w", err)
	}

	return id, nil
}

// GetMember retrieves one membership row, or ErrMemberNotFound
func (r *ProjectRepository) GetMember(ctx context.Context, projectID, profileID int64) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.QueryRow(ctx,
		`SELECT id, project_id, profile_id, role, created_at FROM project_members WHERE project_id = $1 AND profile_id = $2`,
		projectID, profileID).
		Scan(&member.ID, &member.ProjectID, &member.ProfileID, &member.Role, &member.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error retrieving project member: %w", err)
	}

	return &member, nil
}

// GetMembers retrieves all members of a project with their profiles
func (r *ProjectRepository) GetMembers(ctx context.Context, projectID int64) ([]models.ProjectMember, error) {
	query := fmt.Sprintf(`
		SELECT pm.id, pm.project_id, pm.profile_id, pm.role, pm.created_at, %s
		FROM project_members pm
		JOIN profiles p ON p.id = pm.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE pm.project_id = $1
		ORDER BY pm.id
	`, profileColumns)

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project members: %w", err)
	}
	defer rows.Close()

	members := []models.ProjectMember{}
	for rows.Next() {
		var member models.ProjectMember
		var profile models.Profile
		err := rows.Scan(
			&member.ID, &member.ProjectID, &member.ProfileID, &member.Role, &member.CreatedAt,
			&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
			&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
			&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning project member row: %w", err)
		}
		member.Profile = &profile
		members = append(members, member)
	}

	return members, rows.Err()
}

// DeleteMember removes a profile from a project
func (r *ProjectRepository) DeleteMember(ctx context.Context, projectID, profileID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND profile_id = $2`,
		projectID, profileID)
	if err != nil {
		return fmt.Errorf("error deleting project member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}

// CountMembers returns how many profiles belong to a project
func (r *ProjectRepository) CountMembers(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM project_members WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting project members: %w", err)
	}

	return count, nil
}

// CreateStar records a star. The unique constraint on
// (project_id, profile_id) turns a repeat into ErrAlreadyStarred.
func (r *ProjectRepository) CreateStar(ctx context.Context, projectID, profileID int64) (int64, error) {
	query := `
		INSERT INTO project_stars (project_id, profile_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, projectID, profileID).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_stars_project_id_profile_id_key") {
			return 0, apperrors.ErrAlreadyStarred
		}
		return 0, fmt.Errorf("error creating project star: %w", err)
	}

	return id, nil
}

// DeleteStar removes the requester's star, or ErrStarNotFound
func (r *ProjectRepository) DeleteStar(ctx context.Context, projectID, profileID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM project_stars WHERE project_id = $1 AND profile_id = $2`,
		projectID, profileID)
	if err != nil {
		return fmt.Errorf("error deleting project star: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStarNotFound
	}

	return nil
}

// HasStarred reports whether the profile already starred the project
func (r *ProjectRepository) HasStarred(ctx context.Context, projectID, profileID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM project_stars WHERE project_id = $1 AND profile_id = $2)`,
		projectID, profileID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking project star: %w", err)
	}

	return exists, nil
}

// CountStars returns the project's star count
func (r *ProjectRepository) CountStars(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM project_stars WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting project stars: %w", err)
	}

	return count, nil
}

// CreateLink adds an external link to a project
func (r *ProjectRepository) CreateLink(ctx context.Context, link *models.ProjectLink) (int64, error) {
	query := `
		INSERT INTO project_links (project_id, name, href, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, link.ProjectID, link.Name, link.Href, link.IsPublic).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating project link: %w", err)
	}

	return id, nil
}

// GetLinks retrieves a project's links
func (r *ProjectRepository) GetLinks(ctx context.Context, projectID int64) ([]models.ProjectLink, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, name, href, is_public FROM project_links WHERE project_id = $1 ORDER BY id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project links: %w", err)
	}
	defer rows.Close()

	links := []models.ProjectLink{}
	for rows.Next() {
		var link models.ProjectLink
		if err := rows.Scan(&link.ID, &link.ProjectID, &link.Name, &link.Href, &link.IsPublic); err != nil {
			return nil, fmt.Errorf("error scanning project link row: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// GetLinkByID retrieves a single project link
func (r *ProjectRepository) GetLinkByID(ctx context.Context, id int64) (*models.ProjectLink, error) {
	var link models.ProjectLink
	err := r.db.QueryRow(ctx,
		`SELECT id, project_id, name, href, is_public FROM project_links WHERE id = $1`, id).
		Scan(&link.ID, &link.ProjectID, &link.Name, &link.Href, &link.IsPublic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("error retrieving project link: %w", err)
	}

	return &link, nil
}

// DeleteLink removes a project link
func (r *ProjectRepository) DeleteLink(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM project_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting project link: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLinkNotFound
	}

	return nil
}
