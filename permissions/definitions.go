package permissions

import "github.com/camden-git/policeportal/models"

const (
	CaseView   = "case.view"
	CaseCreate = "case.create"
	CaseUpdate = "case.update"
	CaseDelete = "case.delete"
	CaseExport = "case.export"

	PersonnelView   = "personnel.view"
	PersonnelCreate = "personnel.create"
	PersonnelUpdate = "personnel.update"
	PersonnelDelete = "personnel.delete"
	PersonnelExport = "personnel.export"
)

// PermissionDefinition describes a single, specific permission
type PermissionDefinition struct {
	Key         string `json:"key"`         // unique key, e.g., "case.create"
	Name        string `json:"name"`        // friendly name, e.g., "Create Case"
	Description string `json:"description"` // what the permission allows
}

// PermissionGroupDefinition groups related permissions
type PermissionGroupDefinition struct {
	Key         string                 `json:"key"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Permissions []PermissionDefinition `json:"permissions"`
}

// DefinedPermissionGroups holds all statically defined permission groups and their permissions
var DefinedPermissionGroups = []PermissionGroupDefinition{
	{
		Key:         "case",
		Name:        "Case Management",
		Description: "Permissions related to incident cases and their evidence.",
		Permissions: []PermissionDefinition{
			{Key: CaseView, Name: "View Cases", Description: "Allows listing cases and viewing case details and evidence."},
			{Key: CaseCreate, Name: "Create Case", Description: "Allows opening new cases and attaching evidence."},
			{Key: CaseUpdate, Name: "Edit Case", Description: "Allows editing cases and attaching further evidence."},
			{Key: CaseDelete, Name: "Delete Case", Description: "Allows deleting cases together with their evidence files."},
			{Key: CaseExport, Name: "Export Cases", Description: "Allows downloading case listings as spreadsheets."},
		},
	},
	{
		Key:         "personnel",
		Name:        "Personnel Management",
		Description: "Permissions related to officer and employee records.",
		Permissions: []PermissionDefinition{
			{Key: PersonnelView, Name: "View Personnel", Description: "Allows listing personnel and viewing personnel records."},
			{Key: PersonnelCreate, Name: "Create Personnel", Description: "Allows adding personnel records and documents."},
			{Key: PersonnelUpdate, Name: "Edit Personnel", Description: "Allows editing personnel records and attaching documents."},
			{Key: PersonnelDelete, Name: "Delete Personnel", Description: "Allows deleting personnel records together with their documents."},
			{Key: PersonnelExport, Name: "Export Personnel", Description: "Allows downloading personnel listings as spreadsheets."},
		},
	},
}

// roleAbilities lists what each role may do. Admins are granted everything
// in init.
var roleAbilities = map[models.Role][]string{
	models.RoleOfficer: {CaseView, CaseCreate, CaseUpdate, CaseExport, PersonnelView},
	models.RoleUser:    {CaseView, PersonnelView},
}

var (
	allPermissionKeysMap map[string]PermissionDefinition
	allPermissionKeys    []string
	grants               map[models.Role]map[string]bool
)

func init() {
	allPermissionKeysMap = make(map[string]PermissionDefinition)
	for _, group := range DefinedPermissionGroups {
		for _, perm := range group.Permissions {
			allPermissionKeysMap[perm.Key] = perm
			allPermissionKeys = append(allPermissionKeys, perm.Key)
		}
	}

	roleAbilities[models.RoleAdmin] = allPermissionKeys
	grants = make(map[models.Role]map[string]bool, len(roleAbilities))
	for role, keys := range roleAbilities {
		grants[role] = make(map[string]bool, len(keys))
		for _, k := range keys {
			grants[role][k] = true
		}
	}
}

// GetAllPermissionKeys returns a slice of all unique permission string keys
func GetAllPermissionKeys() []string {
	keys := make([]string, len(allPermissionKeys))
	copy(keys, allPermissionKeys)
	return keys
}

// IsValidPermissionKey checks if a given permission key is defined
func IsValidPermissionKey(key string) bool {
	_, ok := allPermissionKeysMap[key]
	return ok
}

// Allows reports whether role has been granted the permission key.
func Allows(role models.Role, key string) bool {
	return grants[role][key]
}

// ForRole returns the permission keys granted to role, in definition order.
func ForRole(role models.Role) []string {
	keys := []string{}
	for _, k := range allPermissionKeys {
		if grants[role][k] {
			keys = append(keys, k)
		}
	}
	return keys
}
