package seeder

import (
	"context"
	"fmt"
	"time"

	"skill-match/internal/database"
	"skill-match/internal/domain/employee"
	"skill-match/internal/domain/job"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/report"
	"skill-match/internal/domain/skill"

	"github.com/google/uuid"
)

var sampleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("skillmatch/sample"))

// SampleUserID is the stable account id of a sample profile, e.g.
// SampleUserID("employer", 0) for the demo employer.
func SampleUserID(kind string, n int) uuid.UUID {
	return uuid.NewSHA1(sampleNamespace, []byte(fmt.Sprintf("%s/%d", kind, n)))
}

type sampleEmployer struct {
	Company  string
	Email    string
	Location string
}

type sampleEmployee struct {
	Name     string
	Years    int
	Location string
	Skills   []string
}

type sampleJob struct {
	Employer int
	Title    string
	Skills   []string
	Years    int
	Salary   string
	Location string
}

var sampleEmployers = []sampleEmployer{
	{Company: "Local Services Agency", Email: "employer@demo.com", Location: "Mumbai"},
	{Company: "City Construction Co", Email: "construction@demo.com", Location: "Mumbai"},
	{Company: "Home Helpers Agency", Email: "helpers@demo.com", Location: "Delhi"},
	{Company: "Tasty Tiffin Service", Email: "tiffin@demo.com", Location: "Bangalore"},
	{Company: "Secure Guards Ltd", Email: "security@demo.com", Location: "Pune"},
	{Company: "Daily Needs Manpower", Email: "daily@demo.com", Location: "Chennai"},
}

var sampleEmployees = []sampleEmployee{
	{Name: "Raju Plumber", Years: 5, Location: "Mumbai", Skills: []string{"Plumbing", "Electrician"}},
	{Name: "Sunita Devi", Years: 10, Location: "Mumbai", Skills: []string{"Tailoring", "Cooking"}},
	{Name: "Ramesh Kumar", Years: 2, Location: "Delhi", Skills: []string{"Driving", "Labor"}},
	{Name: "Lakshmi Patel", Years: 15, Location: "Pune", Skills: []string{"Cooking", "Cleaning", "Housekeeping"}},
	{Name: "Abdul Khan", Years: 5, Location: "Bangalore", Skills: []string{"Carpentry", "Painting"}},
	{Name: "Vijay Singh", Years: 1, Location: "Mumbai", Skills: []string{"Security Guard", "Labor"}},
	{Name: "Deepak Verma", Years: 8, Location: "Delhi", Skills: []string{"Electrician", "Plumbing"}},
	{Name: "Anita Gupta", Years: 4, Location: "Chennai", Skills: []string{"Babysitting", "Laundry"}},
	{Name: "Sanjay Yadav", Years: 6, Location: "Pune", Skills: []string{"Gardening", "Labor"}},
}

var sampleJobs = []sampleJob{
	{Employer: 0, Title: "Experienced Plumber Needed", Skills: []string{"Plumbing"}, Years: 5, Salary: "15000", Location: "Mumbai"},
	{Employer: 1, Title: "Construction Laborer", Skills: []string{"Labor", "Masonry"}, Years: 1, Salary: "12000", Location: "Mumbai"},
	{Employer: 2, Title: "House Maid Wanted", Skills: []string{"Cleaning", "Cooking"}, Years: 2, Salary: "10000", Location: "Delhi"},
	{Employer: 3, Title: "Cook for Tiffin Service", Skills: []string{"Cooking"}, Years: 3, Salary: "14000", Location: "Bangalore"},
	{Employer: 4, Title: "Night Security Guard", Skills: []string{"Security Guard"}, Years: 1, Salary: "13000", Location: "Pune"},
	{Employer: 4, Title: "Security Supervisor", Skills: []string{"Security Guard", "Teamwork"}, Years: 8, Salary: "20000", Location: "Pune"},
	{Employer: 5, Title: "Driver for Family", Skills: []string{"Driving"}, Years: 4, Salary: "16000", Location: "Chennai"},
	{Employer: 0, Title: "Electrician for Shop", Skills: []string{"Electrician"}, Years: 3, Salary: "18000", Location: "Mumbai"},
	{Employer: 1, Title: "Site Manager", Skills: []string{"Teamwork", "Communication"}, Years: 5, Salary: "25000", Location: "Mumbai"},
	{Employer: 2, Title: "Nanny", Skills: []string{"Babysitting"}, Years: 2, Salary: "11000", Location: "Delhi"},
	{Employer: 3, Title: "Kitchen Helper", Skills: []string{"Cleaning"}, Years: 0, Salary: "9000", Location: "Bangalore"},
	{Employer: 5, Title: "Valet Driver", Skills: []string{"Driving"}, Years: 2, Salary: "15000", Location: "Chennai"},
	{Employer: 0, Title: "Home Painter", Skills: []string{"Painting"}, Years: 3, Salary: "14000", Location: "Mumbai"},
	{Employer: 4, Title: "Bodyguard", Skills: []string{"Security Guard"}, Years: 5, Salary: "22000", Location: "Pune"},
	{Employer: 2, Title: "Gardener", Skills: []string{"Gardening"}, Years: 1, Salary: "8000", Location: "Delhi"},
}

// SampleSeeder loads demo employers, employees and jobs. Roughly 70% of the
// jobs are filled, cycling through high, medium and low matches, with fill
// dates spread over the last six months. It does nothing if the demo
// employer already exists.
type SampleSeeder struct {
	Now func() time.Time
}

func (SampleSeeder) Name() string { return "sample" }

func (s SampleSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs", "id", "employer_id", "title", "salary", "location", "experience_required", "filled_by", "filled_at"); err != nil {
		return err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var exists bool
	if err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employer_profiles WHERE user_id = $1)`,
		SampleUserID("employer", 0),
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	skillIDs, err := loadSkillIDs(ctx, db)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	employerIDs := make([]uuid.UUID, 0, len(sampleEmployers))
	for i, e := range sampleEmployers {
		var id uuid.UUID
		if err := tx.QueryRow(ctx,
			`INSERT INTO employer_profiles (user_id, company_name, contact_email, location) VALUES ($1, $2, $3, $4) RETURNING id`,
			SampleUserID("employer", i), e.Company, e.Email, e.Location,
		).Scan(&id); err != nil {
			return fmt.Errorf("insert employer %q: %w", e.Company, err)
		}
		employerIDs = append(employerIDs, id)
	}

	profiles := make([]employee.Profile, 0, len(sampleEmployees))
	for i, e := range sampleEmployees {
		p := employee.Profile{
			UserID:          SampleUserID("employee", i),
			Name:            e.Name,
			Location:        e.Location,
			Skills:          skill.NewSet(e.Skills...),
			ExperienceYears: e.Years,
		}
		if err := tx.QueryRow(ctx,
			`INSERT INTO employee_profiles (user_id, name, location, experience_years) VALUES ($1, $2, $3, $4) RETURNING id`,
			p.UserID, p.Name, p.Location, p.ExperienceYears,
		).Scan(&p.ID); err != nil {
			return fmt.Errorf("insert employee %q: %w", e.Name, err)
		}
		for _, name := range e.Skills {
			if _, err := tx.Exec(ctx, `INSERT INTO employee_skills (employee_id, skill_id) VALUES ($1, $2)`, p.ID, skillIDs[name]); err != nil {
				return err
			}
		}
		profiles = append(profiles, p)
	}

	for i, sj := range sampleJobs {
		j := job.Job{RequiredSkills: skill.NewSet(sj.Skills...), ExperienceRequired: sj.Years}
		var filledBy *uuid.UUID
		var filledAt *time.Time
		if i%10 < 7 {
			filler := PickFiller(profiles, j, i)
			at := now().UTC().AddDate(0, 0, -((i * 37) % 181))
			filledBy, filledAt = &filler.ID, &at
		}

		var jobID uuid.UUID
		if err := tx.QueryRow(ctx,
			`INSERT INTO jobs (employer_id, title, salary, location, experience_required, filled_by, filled_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($7, now())) RETURNING id`,
			employerIDs[sj.Employer], sj.Title, sj.Salary, sj.Location, sj.Years, filledBy, filledAt,
		).Scan(&jobID); err != nil {
			return fmt.Errorf("insert job %q: %w", sj.Title, err)
		}
		for _, name := range sj.Skills {
			if _, err := tx.Exec(ctx, `INSERT INTO job_required_skills (job_id, skill_id) VALUES ($1, $2)`, jobID, skillIDs[name]); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// PickFiller chooses who fills the i-th sample job so the seeded data covers
// every tier: i%3 == 0 wants a high match, 1 a medium one, 2 a low one. It
// falls back to a fixed employee when no profile lands in the wanted tier.
func PickFiller(profiles []employee.Profile, j job.Job, i int) employee.Profile {
	want := []report.Tier{report.TierHigh, report.TierMedium, report.TierLow}[i%3]
	for _, p := range profiles {
		if report.Classify(matching.Score(p, j).Score) == want {
			return p
		}
	}
	return profiles[i%len(profiles)]
}

func loadSkillIDs(ctx context.Context, db database.DB) (map[string]uuid.UUID, error) {
	rows, err := db.Query(ctx, `SELECT id, name FROM skills WHERE name = ANY($1)`, SkillNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]uuid.UUID, len(SkillNames))
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) != len(SkillNames) {
		return nil, fmt.Errorf("expected %d skills, found %d", len(SkillNames), len(out))
	}
	return out, nil
}
