package seeder

import "time"

func Defaults(now func() time.Time) []Seeder {
	return []Seeder{
		SkillsSeeder{},
		SampleSeeder{Now: now},
	}
}
