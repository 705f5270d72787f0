package domain

import "time"

// Discussion is a community thread with embedded comments.
type Discussion struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID returns the id of the discussion author.
func (d *Discussion) OwnerID() string { return d.CreatedBy }

// FindComment returns the comment with the given id, or nil.
func (d *Discussion) FindComment(id string) *Comment {
	for i := range d.Comments {
		if d.Comments[i].ID == id {
			return &d.Comments[i]
		}
	}
	return nil
}

// Comment belongs to exactly one discussion. Its ownership is independent of
// the parent discussion's.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID returns the id of the comment author.
func (c *Comment) OwnerID() string { return c.CreatedBy }
