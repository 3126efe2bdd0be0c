package httpapi

import (
	"time"

	"github.com/dkowalski/quoteshelf/internal/server/models"
	"github.com/dkowalski/quoteshelf/internal/server/services"
)

type userDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type postDTO struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Source    *string   `json:"source,omitempty"`
	CreatorID *int64    `json:"creatorId,omitempty"`
	Private   bool      `json:"private"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type facetDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type filtersResponse struct {
	Authors []facetDTO `json:"authors"`
	Sources []facetDTO `json:"sources"`
}

func toAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{
		Token: res.Token,
		User:  userDTO{ID: res.User.ID, Email: res.User.Email, Name: res.User.Name},
	}
}

func toPostDTO(p *models.Post) postDTO {
	return postDTO{
		ID:        p.ID,
		Content:   p.Content,
		Author:    p.Author,
		Source:    p.Source,
		CreatorID: p.CreatorID,
		Private:   p.Private,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostDTOs(posts []*models.Post) []postDTO {
	result := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		result = append(result, toPostDTO(p))
	}
	return result
}

func toFiltersResponse(f *services.Filters) filtersResponse {
	resp := filtersResponse{Authors: []facetDTO{}, Sources: []facetDTO{}}
	for _, a := range f.Authors {
		resp.Authors = append(resp.Authors, facetDTO{ID: a.ID, Name: a.Name, Count: a.Count})
	}
	for _, s := range f.Sources {
		resp.Sources = append(resp.Sources, facetDTO{ID: s.ID, Name: s.Title, Count: s.Count})
	}
	return resp
}
