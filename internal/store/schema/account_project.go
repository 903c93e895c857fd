package schema

// AccountProject represents the account_projects table - the (account, project)
// ownership join. A row exists only while the account holds at least one token of
// the project: the count is incremented on mint/inbound transfer, decremented on
// outbound transfer, and the row is removed when the count reaches zero.
type AccountProject struct {
	// ID is the composite key "<account id>-<project id>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// AccountID references the owning account
	AccountID string `gorm:"column:account_id;not null;type:text;index"`
	// ProjectID references the project
	ProjectID string `gorm:"column:project_id;not null;type:text;index"`
	// Count is the number of the project's tokens the account currently holds
	Count uint64 `gorm:"column:count;not null"`
}

// TableName specifies the table name for the AccountProject model
func (AccountProject) TableName() string {
	return "account_projects"
}
