package catalog

import (
	"time"

	"github.com/branchstock/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// CreateArticleRequest represents a request to add an article to a branch
type CreateArticleRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=200"`
	Code        string    `json:"code" binding:"max=50"`
	BranchID    uuid.UUID `json:"branch_id" binding:"required"`
	Description string    `json:"description" binding:"max=2000"`
}

// UpdateArticleRequest changes an article. Nil fields keep their value.
type UpdateArticleRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Code        *string    `json:"code" binding:"omitempty,max=50"`
	BranchID    *uuid.UUID `json:"branch_id"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
}

type ArticleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	BranchID    uuid.UUID `json:"branch_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r CreateArticleRequest) details() inventory.ArticleDetails {
	return inventory.ArticleDetails{Name: r.Name, Code: r.Code, BranchID: r.BranchID, Description: r.Description}
}

func (r UpdateArticleRequest) applyTo(d inventory.ArticleDetails) inventory.ArticleDetails {
	if r.Name != nil {
		d.Name = *r.Name
	}
	if r.Code != nil {
		d.Code = *r.Code
	}
	if r.BranchID != nil {
		d.BranchID = *r.BranchID
	}
	if r.Description != nil {
		d.Description = *r.Description
	}
	return d
}

// ToArticleResponse converts a domain Article to ArticleResponse
func ToArticleResponse(a *inventory.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Name:        a.Name,
		Code:        a.Code,
		BranchID:    a.BranchID,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toArticleResponses(articles []inventory.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i := range articles {
		out[i] = ToArticleResponse(&articles[i])
	}
	return out
}
