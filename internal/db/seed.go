package db

import (
	"database/sql"
	"fmt"
)

// SeedReferenceData populates the signature and path registries when they
// are empty. Reference data is normally managed by operators and migration
// scripts; this seed gives a fresh install something to attribute against.
func SeedReferenceData(database *sql.DB) error {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	projects := []struct {
		id, name, clientID, platformID   string
		aliases, keywords, pathFragments string
		weight                           float64
	}{
		{
			"nextbid", "NextBid Auctions", "studio", "web",
			`["nextbid", "next-bid", "auction"]`,
			`["auction", "bid", "lot", "auctioneer", "bidder", "hammer"]`,
			`["NextBid", "nextbid"]`,
			1.0,
		},
		{
			"ai-team", "AI Team Tools", "studio", "web",
			`["ai-team", "aiteam"]`,
			`["agent", "prompt", "extraction", "capture"]`,
			`["ai-team"]`,
			1.0,
		},
		{
			"misc", "Miscellaneous", "", "",
			`["misc"]`,
			`["note"]`,
			`[]`,
			0.5,
		},
	}
	for _, p := range projects {
		if _, err := database.Exec(
			`INSERT INTO projects (id, name, client_id, platform_id, aliases, keywords, path_fragments, weight)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.id, p.name, p.clientID, p.platformID, p.aliases, p.keywords, p.pathFragments, p.weight,
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	paths := []struct{ path, projectID, kind string }{
		{"/var/www/Studio/nextbid", "nextbid", "server"},
		{"/var/www/Studio/ai-team", "ai-team", "server"},
	}
	for _, p := range paths {
		if _, err := database.Exec(
			"INSERT INTO project_paths (path, project_id, kind) VALUES (?, ?, ?)",
			p.path, p.projectID, p.kind,
		); err != nil {
			return fmt.Errorf("seed project paths: %w", err)
		}
	}

	return nil
}
