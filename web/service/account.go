package service

import (
	"labstock/database"
	"labstock/database/model"
	"labstock/logger"
	"labstock/util/crypto"

	"gorm.io/gorm"
)

// ProfileFields carries the seven editable profile fields of an account.
// The password travels separately and only through the password-updating
// operation.
type ProfileFields struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Designation   string
	Laboratory    string
	Username      string
	Email         string
}

type AccountService struct{}

// GetAccount loads the profile fields of one account. The password hash is
// never selected.
func (s *AccountService) GetAccount(id int) (*model.Account, error) {
	db := database.GetDB()

	account := &model.Account{}
	err := db.Model(model.Account{}).
		Omit("password_hash").
		First(account, id).
		Error
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetFirstAccount() (*model.Account, error) {
	db := database.GetDB()

	account := &model.Account{}
	err := db.Model(model.Account{}).
		Omit("password_hash").
		First(account).
		Error
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) ListAccounts() ([]model.Account, error) {
	db := database.GetDB()

	var accounts []model.Account
	err := db.Model(model.Account{}).
		Omit("password_hash").
		Order("id ASC").
		Find(&accounts).
		Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// CheckAccount verifies login credentials. Returns nil when the username is
// unknown or the password does not match.
func (s *AccountService) CheckAccount(username string, password string) *model.Account {
	db := database.GetDB()

	account := &model.Account{}
	err := db.Model(model.Account{}).
		Where("username = ?", username).
		First(account).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil
	} else if err != nil {
		logger.Warning("check account err:", err)
		return nil
	}

	if !crypto.CheckPassword(account.PasswordHash, password) {
		return nil
	}
	return account
}

// CreateAccount registers a new account with a hashed password. Registration
// happens outside the edit workflow (CLI or seeding).
func (s *AccountService) CreateAccount(fields ProfileFields, password string) (*model.Account, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	account := &model.Account{
		FirstName:     fields.FirstName,
		MiddleInitial: fields.MiddleInitial,
		LastName:      fields.LastName,
		Designation:   fields.Designation,
		Laboratory:    fields.Laboratory,
		Username:      fields.Username,
		Email:         fields.Email,
		PasswordHash:  hash,
	}
	db := database.GetDB()
	if err := db.Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func profileUpdateMap(fields ProfileFields) map[string]any {
	return map[string]any{
		"first_name":     fields.FirstName,
		"middle_initial": fields.MiddleInitial,
		"last_name":      fields.LastName,
		"designation":    fields.Designation,
		"laboratory":     fields.Laboratory,
		"username":       fields.Username,
		"email":          fields.Email,
	}
}

// UpdateProfile persists the seven profile fields in one atomic single-row
// update. A username/email collision surfaces as a duplicate error from the
// store; a missing row as gorm.ErrRecordNotFound.
func (s *AccountService) UpdateProfile(id int, fields ProfileFields) error {
	db := database.GetDB()
	result := db.Model(model.Account{}).
		Where("id = ?", id).
		Updates(profileUpdateMap(fields))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateProfileAndPassword persists the profile fields plus a bcrypt hash of
// the new password in the same single-row update. The plaintext is never
// stored or logged.
func (s *AccountService) UpdateProfileAndPassword(id int, fields ProfileFields, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	values := profileUpdateMap(fields)
	values["password_hash"] = hash

	db := database.GetDB()
	result := db.Model(model.Account{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
