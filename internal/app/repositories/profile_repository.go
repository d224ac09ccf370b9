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
	"github.com/unilink/unilink/internal/app/models/dto"
	"github.com/unilink/unilink/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for profiles, their role
// records (students/mentors), skills and links
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const profileColumns = `p.id, p.user_id, p.type, p.first_name, p.last_name, p.bio,
	p.linkedin, p.photo_url, p.birth_date, p.created_at, p.updated_at, u.username`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Type, &profile.FirstName,
		&profile.LastName, &profile.Bio, &profile.LinkedIn, &profile.PhotoURL,
		&profile.BirthDate, &profile.CreatedAt, &profile.UpdatedAt, &profile.Username,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a new profile row inside q and returns its ID
func (r *ProfileRepository) Create(ctx context.Context, q Querier, profile *models.Profile) (int64, error) {
	query := `
		INSERT INTO profiles (user_id, type, first_name, last_name, bio, linkedin, photo_url, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		profile.UserID, profile.Type, profile.FirstName, profile.LastName,
		profile.Bio, profile.LinkedIn, profile.PhotoURL, profile.BirthDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating profile: %w", err)
	}

	return id, nil
}

// CreateStudent inserts the student role record for a profile
func (r *ProfileRepository) CreateStudent(ctx context.Context, q Querier, student *models.Student) (int64, error) {
	query := `
		INSERT INTO students (profile_id, university_id, major_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, student.ProfileID, student.UniversityID, student.MajorID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// CreateMentor inserts the mentor role record for a profile
func (r *ProfileRepository) CreateMentor(ctx context.Context, q Querier, mentor *models.Mentor) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `INSERT INTO mentors (profile_id) VALUES ($1) RETURNING id`, mentor.ProfileID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating mentor: %w", err)
	}

	return id, nil
}

// GetByID retrieves a profile by ID with its relations loaded
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	return r.getOne(ctx, "p.id = $1", id)
}

// GetByUserID retrieves a profile by its owning user ID
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	return r.getOne(ctx, "p.user_id = $1", userID)
}

// GetByUsername retrieves a profile by its user's username
func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return r.getOne(ctx, "u.username = $1", username)
}

func (r *ProfileRepository) getOne(ctx context.Context, cond string, arg any) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE %s
	`, profileColumns, cond)

	profile, err := scanProfile(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	if err := r.loadRelations(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// loadRelations fills skills, links and the role record of a profile
func (r *ProfileRepository) loadRelations(ctx context.Context, profile *models.Profile) error {
	skills, err := r.GetSkills(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.Skills = skills

	links, err := r.GetLinks(ctx, profile.ID)
	if err != nil {
		return err
	}
	profile.Links = links

	switch profile.Type {
	case models.ProfileTypeStudent:
		student, err := r.getStudent(ctx, profile.ID)
		if err != nil {
			return err
		}
		profile.Student = student
	case models.ProfileTypeMentor:
		mentor, err := r.getMentor(ctx, profile.ID)
		if err != nil {
			return err
		}
		profile.Mentor = mentor
	}

	return nil
}

func (r *ProfileRepository) getStudent(ctx context.Context, profileID int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.profile_id, s.university_id, s.major_id,
			un.id, un.name, mj.id, mj.name
		FROM students s
		LEFT JOIN universities un ON un.id = s.university_id
		LEFT JOIN majors mj ON mj.id = s.major_id
		WHERE s.profile_id = $1
	`

	var student models.Student
	var universityID, majorID *int64
	var universityName, majorName *string
	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&student.ID, &student.ProfileID, &student.UniversityID, &student.MajorID,
		&universityID, &universityName, &majorID, &majorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if universityID != nil {
		student.University = &models.University{ID: *universityID, Name: *universityName}
	}
	if majorID != nil {
		student.Major = &models.Major{ID: *majorID, Name: *majorName}
	}

	return &student, nil
}

func (r *ProfileRepository) getMentor(ctx context.Context, profileID int64) (*models.Mentor, error) {
	var mentor models.Mentor
	err := r.db.QueryRow(ctx, `SELECT id, profile_id FROM mentors WHERE profile_id = $1`, profileID).
		Scan(&mentor.ID, &mentor.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor: %w", err)
	}

	query := `
		SELECT m.id, m.name
		FROM markets m
		JOIN mentor_markets mm ON mm.market_id = m.id
		WHERE mm.mentor_id = $1
		ORDER BY m.name
	`
	rows, err := r.db.Query(ctx, query, mentor.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving mentor markets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var market models.Market
		if err := rows.Scan(&market.ID, &market.Name); err != nil {
			return nil, fmt.Errorf("error scanning market row: %w", err)
		}
		mentor.Markets = append(mentor.Markets, market)
	}

	return &mentor, rows.Err()
}

// Update persists the editable profile fields
func (r *ProfileRepository) Update(ctx context.Context, q Querier, profile *models.Profile) error {
	sql, args, err := r.sb.Update("profiles").
		Set("first_name", profile.FirstName).
		Set("last_name", profile.LastName).
		Set("bio", profile.Bio).
		Set("linkedin", profile.LinkedIn).
		Set("photo_url", profile.PhotoURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profile.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// UpdateStudentAffiliation sets or clears a student's university and major
func (r *ProfileRepository) UpdateStudentAffiliation(ctx context.Context, q Querier, profileID int64, universityID, majorID *int64) error {
	cmdTag, err := q.Exec(ctx,
		`UPDATE students SET university_id = $1, major_id = $2 WHERE profile_id = $3`,
		universityID, majorID, profileID)
	if err != nil {
		return fmt.Errorf("error updating student affiliation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// SetSkills replaces the profile's skill set
func (r *ProfileRepository) SetSkills(ctx context.Context, q Querier, profileID int64, skillIDs []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM profile_skills WHERE profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("error clearing profile skills: %w", err)
	}

	for _, skillID := range skillIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO profile_skills (profile_id, skill_id) VALUES ($1, $2)`,
			profileID, skillID)
		if err != nil {
			return fmt.Errorf("error adding profile skill: %w", err)
		}
	}

	return nil
}

// SetMentorMarkets replaces a mentor's market set
func (r *ProfileRepository) SetMentorMarkets(ctx context.Context, q Querier, mentorID int64, marketIDs []int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM mentor_markets WHERE mentor_id = $1`, mentorID); err != nil {
		return fmt.Errorf("error clearing mentor markets: %w", err)
	}

	for _, marketID := range marketIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO mentor_markets (mentor_id, market_id) VALUES ($1, $2)`,
			mentorID, marketID)
		if err != nil {
			return fmt.Errorf("error adding mentor market: %w", err)
		}
	}

	return nil
}

// GetSkills retrieves the profile's skills ordered by name
func (r *ProfileRepository) GetSkills(ctx context.Context, profileID int64) ([]models.Skill, error) {
	query := `
		SELECT s.id, s.name
		FROM skills s
		JOIN profile_skills ps ON ps.skill_id = s.id
		WHERE ps.profile_id = $1
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profile skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name); err != nil {
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, skill)
	}

	return skills, rows.Err()
}

// SearchByUsername retrieves profiles whose username contains the query,
// capped at limit, newest profiles first
func (r *ProfileRepository) SearchByUsername(ctx context.Context, search string, limit int) ([]models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.username ILIKE $1
		ORDER BY p.id DESC
		LIMIT $2
	`, profileColumns)

	return r.queryProfiles(ctx, query, "%"+search+"%", limit)
}

// List retrieves profiles matching the directory filters, capped at
// filter.Length, and the total count of matches for the isall flag
func (r *ProfileRepository) List(ctx context.Context, filter *dto.ProfileListFilter) ([]models.Profile, int64, error) {
	base := squirrel.Select().
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		PlaceholderFormat(squirrel.Dollar)

	if len(filter.Universities) > 0 {
		base = base.LeftJoin("students st ON st.profile_id = p.id").
			LeftJoin("universities un ON un.id = st.university_id").
			Where(squirrel.Or{squirrel.Eq{"un.name": filter.Universities}, squirrel.Eq{"un.id": nil}})
	}
	if len(filter.Majors) > 0 {
		if len(filter.Universities) == 0 {
			base = base.LeftJoin("students st ON st.profile_id = p.id")
		}
		base = base.LeftJoin("majors mj ON mj.id = st.major_id").
			Where(squirrel.Or{squirrel.Eq{"mj.name": filter.Majors}, squirrel.Eq{"mj.id": nil}})
	}
	if len(filter.Skills) > 0 {
		base = base.Join("profile_skills ps ON ps.profile_id = p.id").
			Join("skills sk ON sk.id = ps.skill_id").
			Where(squirrel.Eq{"sk.name": filter.Skills})
	}

	countSQL, countArgs, err := base.Column("COUNT(DISTINCT p.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build profile count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting profiles: %w", err)
	}

	listSQL, listArgs, err := base.
		Column("DISTINCT " + profileColumns).
		OrderBy("p.id DESC").
		Limit(uint64(filter.Length)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build profile list query: %w", err)
	}

	profiles, err := r.queryProfiles(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *ProfileRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]models.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

// CreateLink adds an external link to a profile
func (r *ProfileRepository) CreateLink(ctx context.Context, link *models.Link) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO profile_links (profile_id, name, href) VALUES ($1, $2, $3) RETURNING id`,
		link.ProfileID, link.Name, link.Href).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating link: %w", err)
	}

	return id, nil
}

// GetLinks retrieves a profile's links
func (r *ProfileRepository) GetLinks(ctx context.Context, profileID int64) ([]models.Link, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, name, href FROM profile_links WHERE profile_id = $1 ORDER BY id`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving links: %w", err)
	}
	defer rows.Close()

	links := []models.Link{}
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(&link.ID, &link.ProfileID, &link.Name, &link.Href); err != nil {
			return nil, fmt.Errorf("error scanning link row: %w", err)
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// GetLinkByID retrieves a single profile link
func (r *ProfileRepository) GetLinkByID(ctx context.Context, id int64) (*models.Link, error) {
	var link models.Link
	err := r.db.QueryRow(ctx,
		`SELECT id, profile_id, name, href FROM profile_links WHERE id = $1`, id).
		Scan(&link.ID, &link.ProfileID, &link.Name, &link.Href)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("error retrieving link: %w", err)
	}

	return &link, nil
}

// DeleteLink removes a profile link
func (r *ProfileRepository) DeleteLink(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM profile_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting link: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLinkNotFound
	}

	return nil
}
