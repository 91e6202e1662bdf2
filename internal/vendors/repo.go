package vendors

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/models"
)

// Repository defines vendor lookups.
type Repository interface {
	SearchCompanies(ctx context.Context, term string, limit int) ([]models.Company, error)
	FirstContactEmails(ctx context.Context, companyIDs []uuid.UUID) (map[uuid.UUID]string, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendor repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// SearchCompanies matches names containing term, case-insensitively.
func (r *repository) SearchCompanies(ctx context.Context, term string, limit int) ([]models.Company, error) {
	db := r.db.WithContext(ctx)
	pattern := "%" + escapeLike(term) + "%"

	// sqlite LIKE is already case-insensitive for ASCII and has no ILIKE.
	op := "ILIKE"
	if db.Dialector.Name() == "sqlite" {
		op = "LIKE"
	}

	var rows []models.Company
	err := db.
		Where("name "+op+" ? ESCAPE '\\'", pattern).
		Order("name ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FirstContactEmails returns the earliest contact email on file per company.
func (r *repository) FirstContactEmails(ctx context.Context, companyIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(companyIDs))
	if len(companyIDs) == 0 {
		return out, nil
	}

	var contacts []models.Contact
	err := r.db.WithContext(ctx).
		Where("company_id IN ?", companyIDs).
		Where("email IS NOT NULL AND email <> ''").
		Order("created_at ASC").
		Order("id ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	for _, contact := range contacts {
		if _, seen := out[contact.CompanyID]; seen {
			continue
		}
		out[contact.CompanyID] = *contact.Email
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
