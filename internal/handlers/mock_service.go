package handlers

import (
	"context"
	"net/http"

	"school_cms/internal/models"
	"school_cms/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	loginToken    string
	loginIdentity models.Identity
	loginErr      error
	logoutErr     error
	authIdentity  models.Identity
	authErr       error
	createID      int
	createErr     error
	ensureErr     error

	lastLoginUsername string
	lastLoginPassword string
	lastLogoutToken   string
	lastAuthToken     string
	lastCreateRole    string
	logoutCalls       int
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (string, models.Identity, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginIdentity, m.loginErr
}
func (m *mockAuth) Logout(ctx context.Context, token string) error {
	m.logoutCalls++
	m.lastLogoutToken = token
	return m.logoutErr
}
func (m *mockAuth) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	m.lastAuthToken = token
	return m.authIdentity, m.authErr
}
func (m *mockAuth) CreateUser(username, password, role string) (int, error) {
	m.lastCreateRole = role
	return m.createID, m.createErr
}
func (m *mockAuth) EnsureAdmin(username, password string) error {
	return m.ensureErr
}

type mockContent struct {
	news         []models.News
	events       []models.Event
	testimonials []models.Testimonial
	contactID    int
	postID       int
	posts        []models.Post
	err          error

	lastContact  models.Contact
	lastPost     models.Post
	lastAuthorID int
	lastCategory string
}

func (m *mockContent) ActiveNews(ctx context.Context) ([]models.News, error) {
	return m.news, m.err
}
func (m *mockContent) ActiveEvents(ctx context.Context) ([]models.Event, error) {
	return m.events, m.err
}
func (m *mockContent) ActiveTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return m.testimonials, m.err
}
func (m *mockContent) SubmitContact(ctx context.Context, c models.Contact) (int, error) {
	m.lastContact = c
	return m.contactID, m.err
}
func (m *mockContent) CreatePost(ctx context.Context, p models.Post, authorID int) (int, error) {
	m.lastPost = p
	m.lastAuthorID = authorID
	return m.postID, m.err
}
func (m *mockContent) ActivePosts(ctx context.Context) ([]models.Post, error) {
	return m.posts, m.err
}
func (m *mockContent) PostsByCategory(ctx context.Context, category string) ([]models.Post, error) {
	m.lastCategory = category
	return m.posts, m.err
}

type mockPages struct {
	pages      []models.Page
	page       *models.Page
	components []models.PageComponent
	createID   int
	err        error

	lastPage      models.Page
	lastComponent models.PageComponent
	lastDeleteID  int
}

func (m *mockPages) List(ctx context.Context) ([]models.Page, error)          { return m.pages, m.err }
func (m *mockPages) ListPublished(ctx context.Context) ([]models.Page, error) { return m.pages, m.err }
func (m *mockPages) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	return m.page, m.err
}
func (m *mockPages) Create(ctx context.Context, p models.Page) (int, error) {
	m.lastPage = p
	return m.createID, m.err
}
func (m *mockPages) Update(ctx context.Context, p models.Page) error {
	m.lastPage = p
	return m.err
}
func (m *mockPages) Delete(ctx context.Context, id int) error {
	m.lastDeleteID = id
	return m.err
}
func (m *mockPages) ListComponents(ctx context.Context, pageID int) ([]models.PageComponent, error) {
	return m.components, m.err
}
func (m *mockPages) CreateComponent(ctx context.Context, c models.PageComponent) (int, error) {
	m.lastComponent = c
	return m.createID, m.err
}
func (m *mockPages) UpdateComponent(ctx context.Context, c models.PageComponent) error {
	m.lastComponent = c
	return m.err
}
func (m *mockPages) DeleteComponent(ctx context.Context, id int) error {
	m.lastDeleteID = id
	return m.err
}

type mockMenu struct {
	items    []models.MenuItem
	createID int
	err      error

	lastItem     models.MenuItem
	lastDeleteID int
}

func (m *mockMenu) List(ctx context.Context) ([]models.MenuItem, error)        { return m.items, m.err }
func (m *mockMenu) ListVisible(ctx context.Context) ([]models.MenuItem, error) { return m.items, m.err }
func (m *mockMenu) Create(ctx context.Context, item models.MenuItem) (int, error) {
	m.lastItem = item
	return m.createID, m.err
}
func (m *mockMenu) Update(ctx context.Context, item models.MenuItem) error {
	m.lastItem = item
	return m.err
}
func (m *mockMenu) Delete(ctx context.Context, id int) error {
	m.lastDeleteID = id
	return m.err
}

type mockForms struct {
	forms       []models.Form
	form        *models.Form
	submissions []models.FormSubmission
	createID    int
	submitID    int
	err         error
	submitErr   error

	lastForm       models.Form
	lastSubmitName string
	lastSubmitData string
	lastSubmitIP   string
	lastSubmitUA   string
}

func (m *mockForms) List(ctx context.Context) ([]models.Form, error) { return m.forms, m.err }
func (m *mockForms) GetActiveByName(ctx context.Context, name string) (*models.Form, error) {
	return m.form, m.err
}
func (m *mockForms) Create(ctx context.Context, f models.Form) (int, error) {
	m.lastForm = f
	return m.createID, m.err
}
func (m *mockForms) Update(ctx context.Context, f models.Form) error {
	m.lastForm = f
	return m.err
}
func (m *mockForms) Delete(ctx context.Context, id int) error { return m.err }
func (m *mockForms) Submissions(ctx context.Context, formID int) ([]models.FormSubmission, error) {
	return m.submissions, m.err
}
func (m *mockForms) Submit(ctx context.Context, name, data, ip, userAgent string) (int, error) {
	m.lastSubmitName = name
	m.lastSubmitData = data
	m.lastSubmitIP = ip
	m.lastSubmitUA = userAgent
	return m.submitID, m.submitErr
}

type mockSettings struct {
	settings  []models.SiteSetting
	err       error
	updateErr error

	lastUpdate []models.SiteSetting
}

func (m *mockSettings) All(ctx context.Context) ([]models.SiteSetting, error) {
	return m.settings, m.err
}
func (m *mockSettings) ByCategory(ctx context.Context, category string) ([]models.SiteSetting, error) {
	return m.settings, m.err
}
func (m *mockSettings) Update(ctx context.Context, settings []models.SiteSetting) error {
	m.lastUpdate = settings
	return m.updateErr
}
func (m *mockSettings) EnsureDefaults(ctx context.Context) error { return m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
