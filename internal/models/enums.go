package models

// Role is the access level of a user account. Unknown values are rejected
// at the API boundary, never stored.
type Role string

const (
	RoleUser     Role = "user"
	RoleReporter Role = "reporter"
	RoleEditor   Role = "editor"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleReporter, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// DataType discriminates the two record kinds stored in the fire_news table.
type DataType string

const (
	DataTypeFireNews  DataType = "fire_news"
	DataTypeEmergency DataType = "emergency_911"
)

func (d DataType) Valid() bool {
	return d == DataTypeFireNews || d == DataTypeEmergency
}

// ReporterBotName is the attribution string the upstream Twitter detection
// pipeline stamps on its records.
const ReporterBotName = "Twitter Fire Detection Bot"

// SourceCategory classifies where a record came from. It is derived once at
// insert time so that the query slices do not have to string-match
// reporter_name, which remains pure display attribution.
type SourceCategory string

const (
	SourceTweet         SourceCategory = "tweet"
	SourceWeb           SourceCategory = "web"
	SourceEmergency     SourceCategory = "emergency"
	SourceUncategorized SourceCategory = "uncategorized"
)

// DeriveSourceCategory maps a record's kind and attribution onto its source
// category. Precedence: record kind, then bot attribution, then emptiness.
func DeriveSourceCategory(dataType DataType, reporterName string) SourceCategory {
	if dataType == DataTypeEmergency {
		return SourceEmergency
	}
	switch reporterName {
	case ReporterBotName:
		return SourceTweet
	case "", "null":
		return SourceUncategorized
	}
	return SourceWeb
}

// ActivityType enumerates the audit trail action kinds.
type ActivityType string

const (
	ActivityUserCreated  ActivityType = "user_created"
	ActivityUserUpdated  ActivityType = "user_updated"
	ActivityUserDeleted  ActivityType = "user_deleted"
	ActivityRoleChanged  ActivityType = "role_changed"
	ActivityUserLogin    ActivityType = "user_login"
	ActivityUserLogout   ActivityType = "user_logout"
	ActivityNewsUploaded ActivityType = "news_uploaded"
	ActivityNewsDeleted  ActivityType = "news_deleted"
)

// AllActivityTypes is used by the stats endpoint to report a count per type.
var AllActivityTypes = []ActivityType{
	ActivityUserCreated,
	ActivityUserUpdated,
	ActivityUserDeleted,
	ActivityRoleChanged,
	ActivityUserLogin,
	ActivityUserLogout,
	ActivityNewsUploaded,
	ActivityNewsDeleted,
}
