package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkowalski/quoteshelf/internal/server/models"
)

func ptr(v int64) *int64 { return &v }

func TestCanRead(t *testing.T) {
	t.Parallel()

	owner := int64(1)
	other := int64(2)

	tests := []struct {
		name   string
		viewer *int64
		post   *models.Post
		want   bool
	}{
		{"guest reads public", nil, &models.Post{Private: false, CreatorID: ptr(owner)}, true},
		{"guest blocked from private", nil, &models.Post{Private: true, CreatorID: ptr(owner)}, false},
		{"owner reads own private", &owner, &models.Post{Private: true, CreatorID: ptr(owner)}, true},
		{"other blocked from private", &other, &models.Post{Private: true, CreatorID: ptr(owner)}, false},
		{"anyone reads public", &other, &models.Post{Private: false, CreatorID: ptr(owner)}, true},
		{"private without owner unreadable", &owner, &models.Post{Private: true, CreatorID: nil}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRead(tt.viewer, tt.post))
		})
	}
}

func TestCanMutate(t *testing.T) {
	t.Parallel()

	owner := int64(1)

	assert.True(t, CanMutate(owner, &models.Post{CreatorID: ptr(owner)}))
	assert.False(t, CanMutate(2, &models.Post{CreatorID: ptr(owner)}))

	// a post without an owner must never be mutable, even though
	// well-formed rows always carry one
	assert.False(t, CanMutate(owner, &models.Post{CreatorID: nil}))
}
