package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/influscan/influscan/internal/models"

	_ "github.com/lib/pq"
)

// PostgresStore persists assembled risk reports.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}

	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// SaveReport implements the data.ReportStore interface
func (s *PostgresStore) SaveReport(ctx context.Context, report *models.RiskReport) error {
	socialJSON, err := json.Marshal(report.SocialMetrics)
	if err != nil {
		return fmt.Errorf("failed to encode social metrics: %w", err)
	}
	chainJSON, err := json.Marshal(report.BlockchainActivity)
	if err != nil {
		return fmt.Errorf("failed to encode blockchain activity: %w", err)
	}

	query := `
        INSERT INTO risk_reports (
            id, handle, display_name, avatar_url, platform, risk_score,
            summary, detailed_analysis, social_metrics, blockchain_activity,
            created_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )
        ON CONFLICT (id) DO NOTHING
    `

	_, err = s.db.ExecContext(ctx, query,
		report.ID,
		report.Subject.Handle,
		report.Subject.DisplayName,
		report.Subject.AvatarURL,
		string(report.Platform),
		report.RiskScore,
		report.Summary,
		report.DetailedAnalysis,
		socialJSON,
		chainJSON,
		report.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// ListReports implements the data.ReportStore interface
func (s *PostgresStore) ListReports(ctx context.Context) ([]models.RiskReport, error) {
	query := `
        SELECT id, handle, display_name, avatar_url, platform, risk_score,
               summary, detailed_analysis, social_metrics, blockchain_activity,
               created_at
        FROM risk_reports
        ORDER BY created_at DESC
    `

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var result []models.RiskReport
	for rows.Next() {
		var report models.RiskReport
		var platform string
		var socialJSON, chainJSON []byte

		err := rows.Scan(
			&report.ID,
			&report.Subject.Handle,
			&report.Subject.DisplayName,
			&report.Subject.AvatarURL,
			&platform,
			&report.RiskScore,
			&report.Summary,
			&report.DetailedAnalysis,
			&socialJSON,
			&chainJSON,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		report.Platform = models.ParsePlatform(platform)
		if err := json.Unmarshal(socialJSON, &report.SocialMetrics); err != nil {
			return nil, fmt.Errorf("failed to decode social metrics: %w", err)
		}
		if err := json.Unmarshal(chainJSON, &report.BlockchainActivity); err != nil {
			return nil, fmt.Errorf("failed to decode blockchain activity: %w", err)
		}

		result = append(result, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return result, nil
}

func (s *PostgresStore) initTables() error {
	query := `CREATE TABLE IF NOT EXISTS risk_reports (
		id VARCHAR(200) PRIMARY KEY,
		handle VARCHAR(100) NOT NULL,
		display_name VARCHAR(200),
		avatar_url TEXT,
		platform VARCHAR(20) NOT NULL,
		risk_score INT NOT NULL,
		summary TEXT NOT NULL,
		detailed_analysis TEXT NOT NULL,
		social_metrics JSONB NOT NULL,
		blockchain_activity JSONB NOT NULL,
		created_at BIGINT NOT NULL
	)`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}
