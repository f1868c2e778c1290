package controller

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"labstock/database"
	"labstock/database/model"
	"labstock/logger"
	"labstock/util/validation"
	"labstock/web/service"
	"labstock/web/session"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

// EditForm carries the submitted account fields. The password pair is
// optional and only honored on self-edits.
type EditForm struct {
	FirstName       string `form:"first_name"`
	MiddleInitial   string `form:"middle_initial"`
	LastName        string `form:"last_name"`
	Designation     string `form:"designation"`
	Laboratory      string `form:"laboratory"`
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

// sanitize trims surrounding whitespace and neutralizes markup-significant
// characters on every submitted field so values are safe to redisplay.
func (f *EditForm) sanitize() {
	clean := func(s string) string {
		return template.HTMLEscapeString(strings.TrimSpace(s))
	}
	f.FirstName = clean(f.FirstName)
	f.MiddleInitial = clean(f.MiddleInitial)
	f.LastName = clean(f.LastName)
	f.Designation = clean(f.Designation)
	f.Laboratory = clean(f.Laboratory)
	f.Username = clean(f.Username)
	f.Email = clean(f.Email)
	f.Password = clean(f.Password)
	f.ConfirmPassword = clean(f.ConfirmPassword)
}

// FieldErrors maps form field names to their validation messages.
type FieldErrors map[string]string

// validateEditForm runs every applicable field check and collects all
// failures. The password pair is only checked on a self-edit that actually
// submitted a new password; no field short-circuits another.
func validateEditForm(form *EditForm, selfEdit bool) FieldErrors {
	errs := FieldErrors{}

	if err := validation.ValidateEmail(form.Email); err != nil {
		errs["email_error"] = err.Error()
	}

	if selfEdit && form.Password != "" {
		if err := validation.ValidatePassword(form.Password); err != nil {
			errs["password_error"] = err.Error()
		}
		if err := validation.ValidateConfirmation(form.Password, form.ConfirmPassword); err != nil {
			errs["confirm_password_error"] = err.Error()
		}
	}

	if err := validation.ValidateUsername(form.Username); err != nil {
		errs["username_error"] = err.Error()
	}

	return errs
}

// AccountController implements the account listing and the self-vs-other
// account edit workflow.
type AccountController struct {
	BaseController

	accountService service.AccountService
	policy         service.EditPolicy
}

func NewAccountController(g *gin.RouterGroup) *AccountController {
	a := &AccountController{}
	a.initRouter(g)
	return a
}

func (a *AccountController) initRouter(g *gin.RouterGroup) {
	g.GET("/accounts", a.accounts)
	g.GET("/accounts/export", a.export)
	g.GET("/accounts/edit", a.editForm)
	g.POST("/accounts/edit", a.submitEdit)
}

func (a *AccountController) accounts(c *gin.Context) {
	accounts, err := a.accountService.ListAccounts()
	if err != nil {
		logger.Warning("list accounts failed:", err)
	}
	html(c, "accounts.html", "Accounts", gin.H{
		"accounts": accounts,
	})
}

func (a *AccountController) export(c *gin.Context) {
	accounts, err := a.accountService.ListAccounts()
	if err != nil {
		jsonMsg(c, "Export accounts", err)
		return
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		jsonMsg(c, "Export accounts", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// editForm renders the pre-filled edit form. An unknown or non-numeric id
// renders blank fields rather than failing.
func (a *AccountController) editForm(c *gin.Context) {
	id, _ := strconv.Atoi(c.Query("id"))

	values := blankFormValues()
	storedUsername := ""

	account, err := a.accountService.GetAccount(id)
	if err == nil {
		values = accountFormValues(account)
		storedUsername = account.Username
	} else if !database.IsNotFound(err) {
		logger.Warning("load account failed:", err)
		a.renderForm(c, id, values, FieldErrors{}, false, "Error loading user")
		return
	}

	// Read path compares against the stored username; nothing was submitted
	selfEdit := a.policy.SelfEdit(session.LoggedInUsername(c), storedUsername)
	a.renderForm(c, id, values, FieldErrors{}, selfEdit, "")
}

// submitEdit validates the submission and commits it when every applicable
// check passed.
func (a *AccountController) submitEdit(c *gin.Context) {
	id, _ := strconv.Atoi(c.Query("id"))
	if id == 0 {
		id, _ = strconv.Atoi(c.PostForm("id"))
	}

	var form EditForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderForm(c, id, blankFormValues(), FieldErrors{}, false, "Invalid form data")
		return
	}
	form.sanitize()

	// Write path compares against the submitted username, so renaming your
	// own account still counts as a self-edit for this request
	selfEdit := a.policy.SelfEdit(session.LoggedInUsername(c), form.Username)

	fieldErrors := validateEditForm(&form, selfEdit)
	if len(fieldErrors) > 0 {
		a.renderForm(c, id, editFormValues(&form), fieldErrors, selfEdit, "")
		return
	}

	fields := service.ProfileFields{
		FirstName:     form.FirstName,
		MiddleInitial: form.MiddleInitial,
		LastName:      form.LastName,
		Designation:   form.Designation,
		Laboratory:    form.Laboratory,
		Username:      form.Username,
		Email:         form.Email,
	}

	var err error
	if selfEdit && form.Password != "" {
		err = a.accountService.UpdateProfileAndPassword(id, fields, form.Password)
	} else {
		err = a.accountService.UpdateProfile(id, fields)
	}
	if err != nil {
		msg := "Error updating user"
		if database.IsDuplicate(err) {
			msg = "Username or email already in use"
		}
		logger.Warning("update account failed:", err)
		a.renderForm(c, id, editFormValues(&form), FieldErrors{}, selfEdit, msg)
		return
	}

	if selfEdit {
		// Keep the session in step with a renamed account so the next
		// self-edit check in this session uses the new username
		if account := session.GetLoginAccount(c); account != nil {
			account.Username = form.Username
			if saveErr := session.SetLoginAccount(c, account); saveErr != nil {
				logger.Warning("refresh session username failed:", saveErr)
			}
		}
	}

	c.Redirect(http.StatusFound, c.GetString("base_path")+"panel/accounts")
}

func (a *AccountController) renderForm(c *gin.Context, id int, values map[string]string, fieldErrors FieldErrors, selfEdit bool, storeError string) {
	html(c, "account_form.html", "Update User", gin.H{
		"id":         id,
		"form":       values,
		"errors":     fieldErrors,
		"isSelf":     selfEdit,
		"storeError": storeError,
	})
}

func blankFormValues() map[string]string {
	return map[string]string{
		"first_name":     "",
		"middle_initial": "",
		"last_name":      "",
		"designation":    "",
		"laboratory":     "",
		"username":       "",
		"email":          "",
	}
}

func accountFormValues(account *model.Account) map[string]string {
	return map[string]string{
		"first_name":     account.FirstName,
		"middle_initial": account.MiddleInitial,
		"last_name":      account.LastName,
		"designation":    account.Designation,
		"laboratory":     account.Laboratory,
		"username":       account.Username,
		"email":          account.Email,
	}
}

// editFormValues echoes the submitted values back into the form. Password
// fields are never echoed.
func editFormValues(form *EditForm) map[string]string {
	return map[string]string{
		"first_name":     form.FirstName,
		"middle_initial": form.MiddleInitial,
		"last_name":      form.LastName,
		"designation":    form.Designation,
		"laboratory":     form.Laboratory,
		"username":       form.Username,
		"email":          form.Email,
	}
}
