package schema

// ProjectScript represents the project_scripts table - one raw script fragment per
// (project, index). The project's concatenated script column is rebuilt from these
// rows in index order whenever fragments change; rows at indices past the current
// fragment count are deleted when the script shrinks.
type ProjectScript struct {
	// ID is the composite key "<project id>-<index>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ProjectID references the owning project
	ProjectID string `gorm:"column:project_id;not null;type:text;index"`
	// Index is the fragment's position within the script
	Index uint64 `gorm:"column:index;not null"`
	// Script is the raw fragment source
	Script string `gorm:"column:script;type:text"`
}

// TableName specifies the table name for the ProjectScript model
func (ProjectScript) TableName() string {
	return "project_scripts"
}
