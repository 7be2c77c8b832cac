package db_models

// User is read-only from the payment flows; provisioning lives elsewhere.
type User struct {
	BaseModel
	Name  string
	Email string `gorm:"uniqueIndex"`
	Role  string `gorm:"size:32"`
}

func (User) TableName() string { return "users" }
