package user

// User is the only entity the service stores.
type User struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string `json:"firstName" gorm:"column:first_name;not null"`
	LastName  string `json:"lastName" gorm:"column:last_name;not null"`
	Age       int    `json:"age" gorm:"not null"`
}

func (User) TableName() string { return "users" }

// Patch carries the fields a client may change on an existing user. Nil
// fields are left untouched.
type Patch struct {
	FirstName *string
	LastName  *string
	Age       *int
}

// Apply overwrites the fields of u that are set in p.
func (p Patch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
}
