package seeder

func Defaults(seed int64) []Seeder {
	return []Seeder{
		EmployerSeeder{
			Email:       "demo-employer@talentboard.local",
			Password:    "demo-password",
			DisplayName: "Demo Employer",
		},
		ProjectsSeeder{Count: 8, Seed: seed},
		PostsSeeder{Count: 5, Seed: seed},
	}
}
