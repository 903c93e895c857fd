package schema

// Account represents the accounts table - one row per address ever seen as a token
// owner. Upserted on mint and inbound transfer; never deleted.
type Account struct {
	// ID is the lowercase hex address
	ID string `gorm:"column:id;primaryKey;type:text"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
