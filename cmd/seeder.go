package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with reference data",
	Long:  `Seed roles, departments, field types and a default admin account for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"field_responses", "inscriptions", "notifications", "dropdown_options", "form_fields", "events", "users", "departements", "roles", "field_types"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		for _, role := range []string{"admin", "employee"} {
			if _, err := db.Exec(
				"INSERT INTO roles (name, created_at, updated_at) VALUES ($1, now(), now()) ON CONFLICT (name) DO NOTHING",
				role,
			); err != nil {
				log.Fatalf("failed to seed role %s: %v", role, err)
			}
		}
		fmt.Println("Seeded roles: admin, employee")

		departments := map[string]string{
			"ENG": "Engineering",
			"HR":  "Human Resources",
			"FIN": "Finance",
			"OPS": "Operations",
		}
		for code, name := range departments {
			if _, err := db.Exec(
				"INSERT INTO departements (code, name, created_at, updated_at) VALUES ($1, $2, now(), now()) ON CONFLICT (code) DO NOTHING",
				code, name,
			); err != nil {
				log.Fatalf("failed to seed department %s: %v", code, err)
			}
		}
		fmt.Println("Seeded departments")

		fieldTypes := []string{"text", "number", "file", "date", "checkbox", "radio"}
		for _, ft := range fieldTypes {
			if _, err := db.Exec(
				"INSERT INTO field_types (name, created_at, updated_at) VALUES ($1, now(), now()) ON CONFLICT (name) DO NOTHING",
				ft,
			); err != nil {
				log.Fatalf("failed to seed field type %s: %v", ft, err)
			}
		}
		fmt.Println("Seeded field types")

		hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		var exists int
		adminUsername := "admin"
		if err := db.QueryRow("SELECT 1 FROM users WHERE username = $1", adminUsername).Scan(&exists); err == nil {
			fmt.Println("admin user already exists; skipping")
			return
		}

		if _, err := db.Exec(`
			INSERT INTO users (name, username, password_hash, role_id, department_id, created_at, updated_at)
			SELECT 'Administrator', $1, $2, r.id, d.id, now(), now()
			FROM roles r, departements d
			WHERE r.name = 'admin' AND d.code = 'ENG'`,
			adminUsername, string(hash),
		); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", adminUsername)
	},
}
