package domain

// ProjectField is the symbolic field name carried by a ProjectUpdated event. The set
// is closed: handlers dispatch over these constants with an explicit default arm, so a
// newly added upstream field shows up as a logged "unexpected field" rather than a
// silent branch miss.
type ProjectField string

const (
	FieldProjectCreated           ProjectField = "created"
	FieldProjectActive            ProjectField = "active"
	FieldProjectArtistAddress     ProjectField = "artistAddress"
	FieldProjectArtistName        ProjectField = "artistName"
	FieldProjectAspectRatio       ProjectField = "aspectRatio"
	FieldProjectBaseURI           ProjectField = "baseURI"
	FieldProjectCompleted         ProjectField = "completed"
	FieldProjectDescription       ProjectField = "description"
	FieldProjectLicense           ProjectField = "license"
	FieldProjectMaxInvocations    ProjectField = "maxInvocations"
	FieldProjectName              ProjectField = "name"
	FieldProjectPaused            ProjectField = "paused"
	FieldProjectRoyaltyPercentage ProjectField = "royaltyPercentage"
	FieldProjectScript            ProjectField = "script"
	FieldProjectScriptType        ProjectField = "scriptType"
	FieldProjectWebsite           ProjectField = "website"
)

// PlatformField is the symbolic field name carried by a PlatformUpdated event.
type PlatformField string

const (
	FieldPlatformAdmin                  PlatformField = "admin"
	FieldPlatformNextProjectID          PlatformField = "nextProjectId"
	FieldPlatformNewProjectsForbidden   PlatformField = "newProjectsForbidden"
	FieldPlatformRandomizerAddress      PlatformField = "randomizerAddress"
	FieldPlatformCurationRegistry       PlatformField = "curationRegistryAddress"
	FieldPlatformDependencyRegistry     PlatformField = "dependencyRegistryAddress"
	FieldPlatformPrimarySalesAddress    PlatformField = "renderProviderAddress"
	FieldPlatformPrimarySalesPercentage PlatformField = "renderProviderPercentage"
	FieldPlatformSecondarySalesAddress  PlatformField = "renderProviderSecondarySalesAddress"
	FieldPlatformSecondarySalesBPS      PlatformField = "renderProviderSecondarySalesBPS"
	FieldPlatformMintWhitelisted        PlatformField = "mintWhitelisted"
)
