package seeder

import (
	"context"
	"fmt"

	"skill-match/internal/database"
)

var SkillNames = []string{
	"Plumbing", "Tailoring", "Cooking", "Cleaning", "Driving",
	"Electrician", "Carpentry", "Masonry", "Security Guard",
	"Housekeeping", "Painting", "Babysitting", "Laundry", "Gardening",
	"Communication", "Teamwork", "Labor",
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range SkillNames {
		if _, err := tx.Exec(ctx, `INSERT INTO skills (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
