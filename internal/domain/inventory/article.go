package inventory

import (
	"strings"

	"github.com/branchstock/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Article is a product line carried by a branch. Items are its sellable
// sizes; stock entries copy the article name at write time.
type Article struct {
	shared.BaseEntity
	Name        string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_article_branch_name,priority:2"`
	Code        string    `gorm:"type:varchar(50)"`
	BranchID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_article_branch_name,priority:1"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Article) TableName() string {
	return "articles"
}

// ArticleDetails holds the caller-editable fields of an article
type ArticleDetails struct {
	Name        string
	Code        string
	BranchID    uuid.UUID
	Description string
}

// NewArticle creates an article at d.BranchID
func NewArticle(d ArticleDetails) (*Article, error) {
	a := &Article{BaseEntity: shared.NewBaseEntity()}
	if err := a.Update(d); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the editable fields after validating them
func (a *Article) Update(d ArticleDetails) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("Article name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Article name cannot exceed 200 characters")
	}
	if d.BranchID == uuid.Nil {
		return shared.NewValidationError("Branch ID is required")
	}

	a.Name = name
	a.Code = strings.TrimSpace(d.Code)
	a.BranchID = d.BranchID
	a.Description = strings.TrimSpace(d.Description)
	return nil
}

func (a *Article) Details() ArticleDetails {
	return ArticleDetails{Name: a.Name, Code: a.Code, BranchID: a.BranchID, Description: a.Description}
}
