// Package seed fills the reference tables consulted at signup and in the
// directory filters
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var defaultSkills = []string{
	"Python", "JavaScript", "TypeScript", "Go", "Java", "C++", "SQL",
	"React", "Node.js", "Flutter", "Django", "Machine Learning",
	"Data Science", "UX Design", "UI Design", "Product Management",
	"Marketing Digital", "Gestão de Projetos", "Vendas", "Finanças",
}

var defaultMarkets = []string{
	"Fintech", "Edtech", "Healthtech", "Agrotech", "E-commerce",
	"Games", "Inteligência Artificial", "Sustentabilidade",
	"Logística", "Mobilidade",
}

var defaultMajors = []string{
	"Ciência da Computação", "Engenharia de Software",
	"Sistemas de Informação", "Engenharia Elétrica",
	"Engenharia de Produção", "Administração", "Economia",
	"Design", "Direito", "Medicina",
}

var defaultUniversities = []string{
	"USP", "UNICAMP", "UNESP", "UFRJ", "UFMG", "UFRGS",
	"UFSC", "UnB", "PUC-SP", "PUC-Rio",
}

// CreateDefaultData inserts the reference rows if they are missing.
// Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating reference data...")

	tables := []struct {
		name  string
		rows  []string
	}{
		{"skills", defaultSkills},
		{"markets", defaultMarkets},
		{"majors", defaultMajors},
		{"universities", defaultUniversities},
	}

	for _, t := range tables {
		if err := seedNames(ctx, dbPool, t.name, t.rows); err != nil {
			lgr.Error().Err(err).Str("table", t.name).Msg("Error seeding reference table")
			return err
		}
	}

	lgr.Info().Msg("Reference data ready.")
	return nil
}

// seedNames inserts names into a single-name reference table, skipping
// rows that already exist
func seedNames(ctx context.Context, dbPool *pgxpool.Pool, table string, names []string) error {
	query := fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", table)
	for _, name := range names {
		if _, err := dbPool.Exec(ctx, query, name); err != nil {
			return fmt.Errorf("failed to seed %s: %w", table, err)
		}
	}
	return nil
}
