package chart

import (
	"encoding/json"
	"time"
)

// Creator identifies who made a chart. Charts from older data only carry a
// display name (Legacy); newer ones carry the numeric user id, which is
// what ownership is checked against.
type Creator struct {
	Name   string `json:"name"`
	UserID int64  `json:"user_id,omitempty"`
	Legacy bool   `json:"legacy,omitempty"`
}

// NewCreator returns an identified creator.
func NewCreator(name string, userID int64) Creator {
	return Creator{Name: name, UserID: userID}
}

// LegacyCreator returns a creator known only by display name.
func LegacyCreator(name string) Creator {
	return Creator{Name: name, Legacy: true}
}

// Owns reports whether userID owns the chart. A legacy creator owns nothing
// until it has been claimed.
func (c Creator) Owns(userID int64) bool {
	return !c.Legacy && c.UserID == userID
}

// Claim upgrades a legacy creator to an identified one when name matches
// its display name. It reports whether an upgrade happened.
func (c *Creator) Claim(name string, userID int64) bool {
	if !c.Legacy || c.Name != name {
		return false
	}
	c.UserID = userID
	c.Legacy = false
	return true
}

func (c Creator) String() string {
	return c.Name
}

// UnmarshalJSON accepts both the object form and a bare display name, which
// is how creators were stored before user ids were tracked.
func (c *Creator) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = LegacyCreator(name)
		return nil
	}
	type plain Creator
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Creator(p)
	return nil
}

// Meta holds the attributes every chart kind shares.
type Meta struct {
	ID           int        `json:"id"`
	Name         string     `json:"name,omitempty"`
	Creator      Creator    `json:"creator"`
	CustomPoints bool       `json:"custom_points"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// Info returns the shared attributes.
func (m *Meta) Info() *Meta {
	return m
}

// SetID is used by the registry when a chart is added.
func (m *Meta) SetID(id int) {
	m.ID = id
}

// ClaimCreator upgrades a legacy creator, see Creator.Claim.
func (m *Meta) ClaimCreator(name string, userID int64) bool {
	return m.Creator.Claim(name, userID)
}

// Title returns the chart name or a placeholder.
func (m *Meta) Title() string {
	if m.Name == "" {
		return "None"
	}
	return m.Name
}

// now is swapped in tests.
var now = time.Now

func (m *Meta) touch() {
	t := now()
	m.LastModified = &t
}
