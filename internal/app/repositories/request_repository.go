package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unilink/unilink/internal/app/models"
	"github.com/unilink/unilink/internal/pkg/apperrors"
	"github.com/unilink/unilink/internal/pkg/dberrors"
)

// RequestRepository handles project invitations and entry requests. Both
// live in the project_requests table and differ only by type.
type RequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const requestColumns = `rq.id, rq.project_id, rq.profile_id, rq.type, rq.message, rq.created_at`

const requestJoinedColumns = requestColumns + `,
	pr.id, pr.category, pr.name, pr.slogan, pr.description, pr.image_url, pr.created_at, pr.updated_at,
	p.id, p.user_id, p.type, p.first_name, p.last_name, p.bio, p.linkedin, p.photo_url,
	p.birth_date, p.created_at, p.updated_at, u.username`

func scanRequestJoined(row pgx.Row) (*models.ProjectRequest, error) {
	var request models.ProjectRequest
	var project models.Project
	var profile models.Profile
	err := row.Scan(
		&request.ID, &request.ProjectID, &request.ProfileID, &request.Type,
		&request.Message, &request.CreatedAt,
		&project.ID, &project.Category, &project.Name, &project.Slogan,
		&project.Description, &project.ImageURL, &project.CreatedAt, &project.UpdatedAt,
		&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
		&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
		&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
	)
	if err != nil {
		return nil, err
	}
	request.Project = &project
	request.Profile = &profile
	return &request, nil
}

// Create records a pending request inside q. The unique constraint on
// (project_id, profile_id, type) maps repeats to the conflict sentinel
// matching the request type.
func (r *RequestRepository) Create(ctx context.Context, q Querier, request *models.ProjectRequest) (int64, error) {
	query := `
		INSERT INTO project_requests (project_id, profile_id, type, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		request.ProjectID, request.ProfileID, request.Type, request.Message,
	).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "project_requests_project_id_profile_id_type_key") {
			if request.Type == models.RequestTypeInvitation {
				return 0, apperrors.ErrAlreadyInvited
			}
			return 0, apperrors.ErrAlreadyRequested
		}
		return 0, fmt.Errorf("error creating project request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a pending request with its project and requesting
// profile loaded
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.ProjectRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM project_requests rq
		JOIN projects pr ON pr.id = rq.project_id
		JOIN profiles p ON p.id = rq.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE rq.id = $1
	`, requestJoinedColumns)

	request, err := scanRequestJoined(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving project request: %w", err)
	}

	return request, nil
}

// Delete removes a request once it has been answered
func (r *RequestRepository) Delete(ctx context.Context, q Querier, id int64) error {
	cmdTag, err := q.Exec(ctx, `DELETE FROM project_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting project request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}

// HasPending reports whether a request of the given type is already open
// for the profile on the project
func (r *RequestRepository) HasPending(ctx context.Context, projectID, profileID int64, reqType models.RequestType) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM project_requests WHERE project_id = $1 AND profile_id = $2 AND type = $3)`,
		projectID, profileID, reqType).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking project request: %w", err)
	}

	return exists, nil
}

// GetByProject retrieves all pending requests of a project with their
// profiles, oldest first
func (r *RequestRepository) GetByProject(ctx context.Context, projectID int64) ([]models.ProjectRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM project_requests rq
		JOIN projects pr ON pr.id = rq.project_id
		JOIN profiles p ON p.id = rq.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE rq.project_id = $1
		ORDER BY rq.id
	`, requestJoinedColumns)

	return r.queryRequests(ctx, query, projectID)
}

// InvitationsForProfile retrieves the profile's pending invitations with
// the inviting projects, newest first
func (r *RequestRepository) InvitationsForProfile(ctx context.Context, profileID int64) ([]models.ProjectRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM project_requests rq
		JOIN projects pr ON pr.id = rq.project_id
		JOIN profiles p ON p.id = rq.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE rq.profile_id = $1 AND rq.type = $2
		ORDER BY rq.id DESC
	`, requestJoinedColumns)

	return r.queryRequests(ctx, query, profileID, models.RequestTypeInvitation)
}

// EntryRequestsForMemberships retrieves the pending entry requests of
// every project the profile belongs to, together with the profile's role
// in each project. Callers decide which roles may see them.
func (r *RequestRepository) EntryRequestsForMemberships(ctx context.Context, profileID int64) ([]models.ProjectRequest, []models.MemberRole, error) {
	query := fmt.Sprintf(`
		SELECT %s, pm.role
		FROM project_requests rq
		JOIN project_members pm ON pm.project_id = rq.project_id AND pm.profile_id = $1
		JOIN projects pr ON pr.id = rq.project_id
		JOIN profiles p ON p.id = rq.profile_id
		JOIN users u ON u.id = p.user_id
		WHERE rq.type = $2
		ORDER BY rq.id DESC
	`, requestJoinedColumns)

	rows, err := r.db.Query(ctx, query, profileID, models.RequestTypeEntryRequest)
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving entry requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ProjectRequest{}
	roles := []models.MemberRole{}
	for rows.Next() {
		var request models.ProjectRequest
		var project models.Project
		var profile models.Profile
		var role models.MemberRole
		err := rows.Scan(
			&request.ID, &request.ProjectID, &request.ProfileID, &request.Type,
			&request.Message, &request.CreatedAt,
			&project.ID, &project.Category, &project.Name, &project.Slogan,
			&project.Description, &project.ImageURL, &project.CreatedAt, &project.UpdatedAt,
			&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
			&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
			&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
			&role,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning entry request row: %w", err)
		}
		request.Project = &project
		request.Profile = &profile
		requests = append(requests, request)
		roles = append(roles, role)
	}

	return requests, roles, rows.Err()
}

func (r *RequestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]models.ProjectRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving project requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ProjectRequest{}
	for rows.Next() {
		request, err := scanRequestJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning project request row: %w", err)
		}
		requests = append(requests, *request)
	}

	return requests, rows.Err()
}
