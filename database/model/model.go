// Package model defines the database entities of the labstock panel.
package model

// Designations staff can hold. An empty value is allowed while a record is
// being edited.
const (
	DesignationMedTech    = "Medical Technologist"
	DesignationResearcher = "Researcher"
	DesignationLabManager = "Lab Manager"
	DesignationStudent    = "Student"
	DesignationTechnician = "Technician"
)

// Laboratories (departments) of the facility.
const (
	LabPathology    = "Pathology"
	LabImmunology   = "Immunology"
	LabMicrobiology = "Microbiology"
)

// Inventory item kinds, matching the three department inventory forms.
const (
	KindChemical   = "chemical"
	KindBiological = "biological"
	KindSupply     = "supply"
)

// ValidDesignation reports whether s is one of the known designations or empty.
func ValidDesignation(s string) bool {
	switch s {
	case "", DesignationMedTech, DesignationResearcher, DesignationLabManager,
		DesignationStudent, DesignationTechnician:
		return true
	}
	return false
}

// ValidLaboratory reports whether s is one of the known laboratories or empty.
func ValidLaboratory(s string) bool {
	switch s {
	case "", LabPathology, LabImmunology, LabMicrobiology:
		return true
	}
	return false
}

// ValidKind reports whether s is one of the inventory kinds.
func ValidKind(s string) bool {
	switch s {
	case KindChemical, KindBiological, KindSupply:
		return true
	}
	return false
}

// Account is one staff account. PasswordHash is never serialized and is only
// written through AccountService password updates.
type Account struct {
	Id            int    `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName     string `json:"firstName" form:"first_name"`
	MiddleInitial string `json:"middleInitial" form:"middle_initial"`
	LastName      string `json:"lastName" form:"last_name"`
	Designation   string `json:"designation" form:"designation"`
	Laboratory    string `json:"laboratory" form:"laboratory"`
	Username      string `json:"username" form:"username" gorm:"uniqueIndex;not null"`
	Email         string `json:"email" form:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string `json:"-" gorm:"column:password_hash"`
}

// InventoryItem is one recorded inventory entry of a laboratory.
// ExpiryTime and CreatedAt are unix milliseconds; ExpiryTime 0 means the item
// does not expire.
type InventoryItem struct {
	Id              int     `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Laboratory      string  `json:"laboratory" form:"laboratory" gorm:"index"`
	Kind            string  `json:"kind" form:"kind" gorm:"index"`
	Name            string  `json:"name" form:"name"`
	Quantity        float64 `json:"quantity" form:"quantity"`
	Unit            string  `json:"unit" form:"unit"`
	StorageLocation string  `json:"storageLocation" form:"storage_location"`
	ExpiryTime      int64   `json:"expiryTime" form:"expiryTime"`
	AssetTag        string  `json:"assetTag" gorm:"uniqueIndex"`
	CreatedAt       int64   `json:"createdAt"`
}

// Setting is one key/value panel setting.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}
