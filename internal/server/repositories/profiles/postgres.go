package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/dbx"
	"github.com/tanvirrahman/matrimony/internal/server/models"
)

const profileColumns = `bio_id, owner_email, name, category, date_of_birth,
		height_cm, weight_kg, age, occupation, race, fathers_name, mothers_name,
		permanent_division, present_division, expected_partner_age,
		expected_partner_height_cm, expected_partner_weight_kg,
		contact_email, mobile_number, photo_key, premium, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (bio_id, owner_email, name, category, date_of_birth,
			height_cm, weight_kg, age, occupation, race, fathers_name, mothers_name,
			permanent_division, present_division, expected_partner_age,
			expected_partner_height_cm, expected_partner_weight_kg,
			contact_email, mobile_number, photo_key, premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.BioID, p.OwnerEmail, p.Name, p.Category, p.DateOfBirth,
		p.HeightCM, p.WeightKG, p.Age, p.Occupation, p.Race,
		p.FathersName, p.MothersName, p.PermanentDivision, p.PresentDivision,
		p.ExpectedPartnerAge, p.ExpectedPartnerHeightCM, p.ExpectedPartnerWeightKG,
		p.ContactEmail, p.MobileNumber, p.PhotoKey, p.Premium)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update lists every mutable column explicitly. bio_id, owner_email and
// created_at are deliberately absent: resubmission never reassigns identity.
func (r *PostgresRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, category = $2, date_of_birth = $3, height_cm = $4,
			weight_kg = $5, age = $6, occupation = $7, race = $8,
			fathers_name = $9, mothers_name = $10, permanent_division = $11,
			present_division = $12, expected_partner_age = $13,
			expected_partner_height_cm = $14, expected_partner_weight_kg = $15,
			contact_email = $16, mobile_number = $17, photo_key = $18,
			premium = $19, updated_at = now()
		WHERE bio_id = $20 AND owner_email = $21
	`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Category, p.DateOfBirth, p.HeightCM, p.WeightKG, p.Age,
		p.Occupation, p.Race, p.FathersName, p.MothersName,
		p.PermanentDivision, p.PresentDivision, p.ExpectedPartnerAge,
		p.ExpectedPartnerHeightCM, p.ExpectedPartnerWeightKG,
		p.ContactEmail, p.MobileNumber, p.PhotoKey, p.Premium,
		p.BioID, p.OwnerEmail)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetPremium(ctx context.Context, bioID int64) error {
	query := `UPDATE profiles SET premium = true, updated_at = now() WHERE bio_id = $1`
	res, err := r.db.ExecContext(ctx, query, bioID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, bioID int64) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE bio_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, bioID))
}

func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerEmail))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.BioID, &p.OwnerEmail, &p.Name, &p.Category, &p.DateOfBirth,
		&p.HeightCM, &p.WeightKG, &p.Age, &p.Occupation, &p.Race,
		&p.FathersName, &p.MothersName, &p.PermanentDivision, &p.PresentDivision,
		&p.ExpectedPartnerAge, &p.ExpectedPartnerHeightCM, &p.ExpectedPartnerWeightKG,
		&p.ContactEmail, &p.MobileNumber, &p.PhotoKey, &p.Premium,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// List serves the browse path. Each call runs a fresh query, so re-issuing
// the same arguments yields a fresh snapshot.
func (r *PostgresRepository) List(ctx context.Context, category string, limit int) ([]*models.ProfileSummary, error) {
	query := `
		SELECT bio_id, name, category, age, occupation, permanent_division,
			photo_key, premium
		FROM profiles
	`
	args := []any{}
	if category != "" {
		query += ` WHERE LOWER(category) = LOWER($1)`
		args = append(args, category)
	}
	query += ` ORDER BY bio_id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ProfileSummary
	for rows.Next() {
		s := &models.ProfileSummary{}
		if err := rows.Scan(&s.BioID, &s.Name, &s.Category, &s.Age,
			&s.Occupation, &s.PermanentDivision, &s.PhotoKey, &s.Premium); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	query := `SELECT COUNT(*) FROM profiles WHERE LOWER(category) = LOWER($1)`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, category).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
