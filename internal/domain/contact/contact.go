package contact

import (
	"time"

	"github.com/google/uuid"
)

// Query is a contact-us ticket. Anyone may submit one; only admins read and
// reply.
type Query struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name        string    `gorm:"column:name;type:varchar(150);not null"`
	Age         *int      `gorm:"column:age"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null"`
	Address     string    `gorm:"column:address;type:text"`
	Problem     string    `gorm:"column:problem;type:text"`

	AdminReply string `gorm:"column:admin_reply;type:text"`

	// RepliedAt records the first time AdminReply became non-empty and is
	// never updated or cleared afterwards, even if the reply is edited or
	// emptied again.
	RepliedAt *time.Time `gorm:"column:replied_at"`
}

func (Query) TableName() string {
	return "support.contact_queries"
}

// ApplyReply sets the reply text and stamps RepliedAt on the first transition
// to a non-empty reply. Returns true if RepliedAt was stamped.
func (q *Query) ApplyReply(text string, now time.Time) bool {
	stamped := false
	if text != "" && text != q.AdminReply && q.RepliedAt == nil {
		q.RepliedAt = &now
		stamped = true
	}
	q.AdminReply = text
	return stamped
}

type SubmitQueryCommand struct {
	Name        string
	Age         *int
	DateOfBirth time.Time
	Address     string
	Problem     string
}
