package controller

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"labstock/database"
	"labstock/web/service"
	"labstock/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func validForm() EditForm {
	return EditForm{
		FirstName:     "Maria",
		MiddleInitial: "C",
		LastName:      "Reyes",
		Designation:   "Medical Technologist",
		Laboratory:    "Microbiology",
		Username:      "mreyes2024",
		Email:         "mreyes@lab.example.org",
	}
}

func TestValidateEditFormCollectsAllErrors(t *testing.T) {
	form := validForm()
	form.Username = "bad"
	form.Email = "not-an-email"
	form.Password = "short"
	form.ConfirmPassword = "different"

	errs := validateEditForm(&form, true)

	for _, key := range []string{"username_error", "email_error", "password_error", "confirm_password_error"} {
		if errs[key] == "" {
			t.Errorf("expected %s to be set, got %v", key, errs)
		}
	}
}

func TestValidateEditFormSkipsPasswordForOtherProfiles(t *testing.T) {
	// Password fields present in the submission must be ignored when the
	// requester is editing someone else's profile
	form := validForm()
	form.Password = "short"
	form.ConfirmPassword = "different"

	errs := validateEditForm(&form, false)

	if len(errs) != 0 {
		t.Errorf("expected no errors for non-self edit with valid profile fields, got %v", errs)
	}
}

func TestValidateEditFormSkipsEmptyPasswordOnSelfEdit(t *testing.T) {
	form := validForm()

	errs := validateEditForm(&form, true)

	if len(errs) != 0 {
		t.Errorf("expected no errors when no password was submitted, got %v", errs)
	}
}

func TestValidateEditFormPasswordOnlyFailure(t *testing.T) {
	form := validForm()
	form.Password = "password"
	form.ConfirmPassword = "password"

	errs := validateEditForm(&form, true)

	if errs["password_error"] == "" {
		t.Error("expected password_error to be set")
	}
	if errs["username_error"] != "" || errs["email_error"] != "" {
		t.Errorf("valid username/email must not gain errors, got %v", errs)
	}
	if errs["confirm_password_error"] != "" {
		t.Errorf("matching confirmation must not gain an error, got %v", errs)
	}
}

func TestSanitizeTrimsAndEscapes(t *testing.T) {
	form := EditForm{
		FirstName: "  Maria ",
		LastName:  `Reyes <script>alert("x")</script>`,
		Username:  " mreyes2024 ",
		Email:     " mreyes@lab.example.org ",
	}
	form.sanitize()

	if form.FirstName != "Maria" {
		t.Errorf("expected trimmed first name, got %q", form.FirstName)
	}
	if form.Username != "mreyes2024" {
		t.Errorf("expected trimmed username, got %q", form.Username)
	}
	if form.Email != "mreyes@lab.example.org" {
		t.Errorf("expected trimmed email, got %q", form.Email)
	}
	if form.LastName == `Reyes <script>alert("x")</script>` {
		t.Error("markup-significant characters must be neutralized")
	}
	for _, c := range []string{"<", ">", `"`} {
		if strings.Contains(form.LastName, c) {
			t.Errorf("sanitized value still contains %q: %q", c, form.LastName)
		}
	}
}

func TestEditFormValuesNeverEchoPasswords(t *testing.T) {
	form := validForm()
	form.Password = "Passw0rd!"
	form.ConfirmPassword = "Passw0rd!"

	values := editFormValues(&form)

	for key, value := range values {
		if value == "Passw0rd!" {
			t.Errorf("password leaked into form value %q", key)
		}
	}
	if values["username"] != "mreyes2024" {
		t.Errorf("submitted values must be preserved, got %v", values)
	}
}

// setupPanel wires the account routes onto a fresh engine backed by a
// throwaway database and a cookie session store, plus two endpoints the tests
// use to enter and inspect the session.
func setupPanel(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "workflow_test.db"
	os.Remove(dbPath)
	if err := database.InitDB(dbPath); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if db, err := database.GetDB().DB(); err == nil {
			db.Close()
		}
		os.Remove(dbPath)
	})

	engine := gin.New()
	engine.Use(sessions.Sessions("labstock", cookie.NewStore([]byte("0123456789abcdef"))))
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", "/")
	})
	engine.SetHTMLTemplate(template.Must(template.New("account_form.html").Parse(
		`{{.isSelf}}|{{index .form "username"}}|{{index .form "first_name"}}`)))

	g := engine.Group("/")
	NewAccountController(g)

	engine.GET("/session/signin", func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Query("id"))
		accountService := service.AccountService{}
		account, err := accountService.GetAccount(id)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if err := session.SetLoginAccount(c, account); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/session/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, session.LoggedInUsername(c))
	})

	return engine
}

func doRequest(engine *gin.Engine, method string, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func signIn(t *testing.T, engine *gin.Engine, id int) []*http.Cookie {
	t.Helper()
	w := doRequest(engine, http.MethodGet, "/session/signin?id="+strconv.Itoa(id), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("sign in returned %d", w.Code)
	}
	return w.Result().Cookies()
}

func whoAmI(t *testing.T, engine *gin.Engine, cookies []*http.Cookie) string {
	t.Helper()
	w := doRequest(engine, http.MethodGet, "/session/whoami", nil, cookies)
	return w.Body.String()
}

// mergeCookies layers fresh Set-Cookie values over the ones already carried.
func mergeCookies(carried, fresh []*http.Cookie) []*http.Cookie {
	byName := map[string]*http.Cookie{}
	order := []string{}
	for _, c := range append(carried, fresh...) {
		if _, seen := byName[c.Name]; !seen {
			order = append(order, c.Name)
		}
		byName[c.Name] = c
	}
	merged := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		merged = append(merged, byName[name])
	}
	return merged
}

func workflowFields(username string, email string) service.ProfileFields {
	return service.ProfileFields{
		FirstName:     "Maria",
		MiddleInitial: "C",
		LastName:      "Reyes",
		Designation:   "Medical Technologist",
		Laboratory:    "Microbiology",
		Username:      username,
		Email:         email,
	}
}

func editFormBody(username string, password string) url.Values {
	form := url.Values{
		"first_name":     {"Maria"},
		"middle_initial": {"C"},
		"last_name":      {"Reyes"},
		"designation":    {"Medical Technologist"},
		"laboratory":     {"Microbiology"},
		"username":       {username},
		"email":          {"mreyes@lab.example.org"},
	}
	if password != "" {
		form.Set("password", password)
		form.Set("confirm_password", password)
	}
	return form
}

func TestSubmitEditSelfRefreshesSessionUsername(t *testing.T) {
	engine := setupPanel(t)
	accountService := service.AccountService{}

	created, err := accountService.CreateAccount(workflowFields("mreyes2024", "mreyes@lab.example.org"), "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	cookies := signIn(t, engine, created.Id)

	// Another session renamed the row; this session still remembers the name
	// it logged in with, and the self-edit write below changes the stored
	// username back to the remembered one
	if err := accountService.UpdateProfile(created.Id, workflowFields("tempname2024", "mreyes@lab.example.org")); err != nil {
		t.Fatal(err)
	}

	w := doRequest(engine, http.MethodPost, "/accounts/edit?id="+strconv.Itoa(created.Id),
		editFormBody("mreyes2024", "NewPass1!"), cookies)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/panel/accounts" {
		t.Errorf("expected redirect to the accounts listing, got %q", loc)
	}

	stored, err := accountService.GetAccount(created.Id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Username != "mreyes2024" {
		t.Errorf("stored username = %q, want %q", stored.Username, "mreyes2024")
	}
	// The password branch ran, so this really was classified as a self-edit
	if accountService.CheckAccount("mreyes2024", "NewPass1!") == nil {
		t.Error("self-edit with a password must rotate the credential")
	}

	// A later request in the same session must see the written username
	cookies = mergeCookies(cookies, w.Result().Cookies())
	if got := whoAmI(t, engine, cookies); got != "mreyes2024" {
		t.Errorf("session username after self-edit = %q, want %q", got, "mreyes2024")
	}
}

func TestSubmitEditRenamedUsernameTreatedAsOtherEdit(t *testing.T) {
	engine := setupPanel(t)
	accountService := service.AccountService{}

	created, err := accountService.CreateAccount(workflowFields("mreyes2024", "mreyes@lab.example.org"), "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	cookies := signIn(t, engine, created.Id)

	// Submitting a username other than the session's is classified against the
	// SUBMITTED value, so this request counts as editing someone else
	w := doRequest(engine, http.MethodPost, "/accounts/edit?id="+strconv.Itoa(created.Id),
		editFormBody("mreyes2025a", "NewPass1!"), cookies)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d: %s", w.Code, w.Body.String())
	}

	stored, err := accountService.GetAccount(created.Id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Username != "mreyes2025a" {
		t.Errorf("stored username = %q, want %q", stored.Username, "mreyes2025a")
	}
	// Password fields in the submission must be ignored on a non-self edit
	if accountService.CheckAccount("mreyes2025a", "NewPass1!") != nil {
		t.Error("non-self edit must never change the password")
	}
	if accountService.CheckAccount("mreyes2025a", "Passw0rd!") == nil {
		t.Error("original credential must survive a non-self edit")
	}

	// The session keeps the name it logged in with
	cookies = mergeCookies(cookies, w.Result().Cookies())
	if got := whoAmI(t, engine, cookies); got != "mreyes2024" {
		t.Errorf("session username after non-self edit = %q, want %q", got, "mreyes2024")
	}
}

func TestEditFormUnknownIdRendersBlankForm(t *testing.T) {
	engine := setupPanel(t)
	accountService := service.AccountService{}

	created, err := accountService.CreateAccount(workflowFields("mreyes2024", "mreyes@lab.example.org"), "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	cookies := signIn(t, engine, created.Id)

	w := doRequest(engine, http.MethodGet, "/accounts/edit?id=424242", nil, cookies)

	if w.Code != http.StatusOK {
		t.Fatalf("expected the form to render, got %d", w.Code)
	}
	// isSelf|username|first_name per the test template: blank fields and a
	// non-self form even though a user is logged in
	if body := w.Body.String(); body != "false||" {
		t.Errorf("unknown id must render a blank non-self form, got %q", body)
	}
}
