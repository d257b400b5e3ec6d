package seeder

func Defaults() []Seeder {
	return []Seeder{
		DemoAccountsSeeder{},
		DemoMissionsSeeder{},
	}
}
