package service

import (
	"os"
	"testing"

	"labstock/database"
	"labstock/database/model"

	"github.com/stretchr/testify/assert"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func testFields() ProfileFields {
	return ProfileFields{
		FirstName:     "Maria",
		MiddleInitial: "C",
		LastName:      "Reyes",
		Designation:   model.DesignationMedTech,
		Laboratory:    model.LabMicrobiology,
		Username:      "mreyes2024",
		Email:         "mreyes@lab.example.org",
	}
}

func TestAccountService(t *testing.T) {
	setup()
	defer teardown()

	service := AccountService{}

	created, err := service.CreateAccount(testFields(), "Passw0rd!")
	assert.NoError(t, err)
	assert.NotZero(t, created.Id)

	// Load never exposes the hash
	account, err := service.GetAccount(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "mreyes2024", account.Username)
	assert.Empty(t, account.PasswordHash)

	// Plaintext is never persisted
	raw := &model.Account{}
	err = database.GetDB().First(raw, created.Id).Error
	assert.NoError(t, err)
	assert.NotEmpty(t, raw.PasswordHash)
	assert.NotEqual(t, "Passw0rd!", raw.PasswordHash)

	// Profile update without password keeps the old credential
	fields := testFields()
	fields.LastName = "Reyes-Santos"
	fields.Laboratory = model.LabImmunology
	err = service.UpdateProfile(created.Id, fields)
	assert.NoError(t, err)

	updated, err := service.GetAccount(created.Id)
	assert.NoError(t, err)
	assert.Equal(t, "Reyes-Santos", updated.LastName)
	assert.Equal(t, model.LabImmunology, updated.Laboratory)
	assert.NotNil(t, service.CheckAccount("mreyes2024", "Passw0rd!"))

	// Profile-and-password update rotates the credential
	err = service.UpdateProfileAndPassword(created.Id, fields, "NewPass1!")
	assert.NoError(t, err)
	assert.Nil(t, service.CheckAccount("mreyes2024", "Passw0rd!"))
	assert.NotNil(t, service.CheckAccount("mreyes2024", "NewPass1!"))
}

func TestAccountServiceNotFound(t *testing.T) {
	setup()
	defer teardown()

	service := AccountService{}

	_, err := service.GetAccount(9999)
	assert.True(t, database.IsNotFound(err))

	err = service.UpdateProfile(9999, testFields())
	assert.True(t, database.IsNotFound(err))

	err = service.UpdateProfileAndPassword(9999, testFields(), "Passw0rd!")
	assert.True(t, database.IsNotFound(err))
}

func TestAccountServiceUsernameConflict(t *testing.T) {
	setup()
	defer teardown()

	service := AccountService{}

	first, err := service.CreateAccount(testFields(), "Passw0rd!")
	assert.NoError(t, err)

	other := testFields()
	other.Username = "jcruz2024a"
	other.Email = "jcruz@lab.example.org"
	second, err := service.CreateAccount(other, "Passw0rd!")
	assert.NoError(t, err)

	// Renaming the second account onto the first one's username must trip the
	// unique constraint, leaving the row untouched
	conflict := other
	conflict.Username = testFields().Username
	err = service.UpdateProfile(second.Id, conflict)
	assert.Error(t, err)
	assert.True(t, database.IsDuplicate(err))

	unchanged, err := service.GetAccount(second.Id)
	assert.NoError(t, err)
	assert.Equal(t, "jcruz2024a", unchanged.Username)

	_ = first
}

func TestCheckAccountUnknownUser(t *testing.T) {
	setup()
	defer teardown()

	service := AccountService{}
	assert.Nil(t, service.CheckAccount("nosuchuser1", "Passw0rd!"))
}
