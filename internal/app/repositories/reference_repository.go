package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unilink/unilink/internal/app/models"
)

// ReferenceRepository handles the lookup tables: universities, majors,
// skills and markets. These are seeded and matched by name during signup
// and profile edits.
type ReferenceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReferenceRepository creates a new ReferenceRepository
func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetUniversities retrieves all universities ordered by name
func (r *ReferenceRepository) GetUniversities(ctx context.Context) ([]models.University, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM universities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving universities: %w", err)
	}
	defer rows.Close()

	universities := []models.University{}
	for rows.Next() {
		var u models.University
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("error scanning university row: %w", err)
		}
		universities = append(universities, u)
	}

	return universities, rows.Err()
}

// GetMajors retrieves all majors ordered by name
func (r *ReferenceRepository) GetMajors(ctx context.Context) ([]models.Major, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM majors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving majors: %w", err)
	}
	defer rows.Close()

	majors := []models.Major{}
	for rows.Next() {
		var m models.Major
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("error scanning major row: %w", err)
		}
		majors = append(majors, m)
	}

	return majors, rows.Err()
}

// GetSkills retrieves all skills ordered by name
func (r *ReferenceRepository) GetSkills(ctx context.Context) ([]models.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM skills ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, s)
	}

	return skills, rows.Err()
}

// GetMarkets retrieves all markets ordered by name
func (r *ReferenceRepository) GetMarkets(ctx context.Context) ([]models.Market, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM markets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving markets: %w", err)
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

// FindUniversityByName retrieves a university matched case-insensitively
// by name. Returns pgx.ErrNoRows wrapped as nil university when absent.
func (r *ReferenceRepository) FindUniversityByName(ctx context.Context, name string) (*models.University, error) {
	var u models.University
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM universities WHERE LOWER(name) = LOWER($1)`,
		strings.TrimSpace(name)).Scan(&u.ID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving university: %w", err)
	}

	return &u, nil
}

// FindMajorByName retrieves a major matched case-insensitively by name
func (r *ReferenceRepository) FindMajorByName(ctx context.Context, name string) (*models.Major, error) {
	var m models.Major
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM majors WHERE LOWER(name) = LOWER($1)`,
		strings.TrimSpace(name)).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving major: %w", err)
	}

	return &m, nil
}

// FindSkillsByNames retrieves the skills whose names match the given list
// case-insensitively. Names without a match are silently dropped.
func (r *ReferenceRepository) FindSkillsByNames(ctx context.Context, names []string) ([]models.Skill, error) {
	if len(names) == 0 {
		return []models.Skill{}, nil
	}

	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}

	sql, args, err := r.sb.Select("id", "name").
		From("skills").
		Where(squirrel.Expr("LOWER(name) = ANY($1)", lowered)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, s)
	}

	return skills, rows.Err()
}

// FindMarketsByNames retrieves the markets whose names match the given
// list case-insensitively. Names without a match are silently dropped.
func (r *ReferenceRepository) FindMarketsByNames(ctx context.Context, names []string) ([]models.Market, error) {
	if len(names) == 0 {
		return []models.Market{}, nil
	}

	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(name)))
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM markets WHERE LOWER(name) = ANY($1)`, lowered)
	if err != nil {
		return nil, fmt.Errorf("error retrieving markets: %w", err)
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
