package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"codedcode/internal/domain"
)

//go:embed migrations/schema.sql.tmpl
var migrationsFS embed.FS

var schemaTemplate = template.Must(
	template.New("schema.sql.tmpl").
		Funcs(template.FuncMap{"in": sqlList}).
		ParseFS(migrationsFS, "migrations/schema.sql.tmpl"),
)

// sqlList renders values as a quoted SQL list: 'a', 'b'.
func sqlList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// Schema renders the DDL. Every CHECK list comes from the domain enums.
func Schema() (string, error) {
	data := map[string]any{
		"ContactSubjects":        domain.Strings(domain.ContactSubjects),
		"ContactStatuses":        domain.Strings(domain.ContactStatuses),
		"YearsOfStudy":           domain.Strings(domain.YearsOfStudy),
		"MembershipTypes":        domain.Strings(domain.MembershipTypes),
		"ProgrammingExperiences": domain.Strings(domain.ProgrammingExperiences),
		"HeardAboutUsSources":    domain.Strings(domain.HeardAboutUsSources),
		"MembershipStatuses":     domain.Strings(domain.MembershipStatuses),
		"EmailConstraint":        membershipEmailConstraint,
	}
	var buf bytes.Buffer
	if err := schemaTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render schema: %w", err)
	}
	return buf.String(), nil
}

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	ddl, err := Schema()
	if err != nil {
		return err
	}
	s := newStore(db, timeout)
	ctx, cancel := s.begin(ctx)
	defer cancel()
	start := time.Now()
	_, err = db.ExecContext(ctx, ddl)
	if err = s.done("migrate", start, err); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
