package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/stocklens/go-inventory-client/apiclient"
	"github.com/stocklens/go-inventory-client/credstore"
	"github.com/stocklens/go-inventory-client/users"
)

// API paths owned by the session manager.
const (
	tokenPath  = "/token/"
	usersPath  = "/inventory/users/"
	mePath     = "/inventory/users/me/"
	logoutPath = "/inventory/users/logout/"
)

// Navigation targets signalled through the Navigator.
const (
	LoginBoundary = "/login"
	LandingView   = "/"
)

// Navigator receives redirect signals: the landing view after login, the
// login boundary after logout or session expiry. Rendering is the caller's
// business.
type Navigator func(target string)

// Manager owns the authentication lifecycle: the token pair and the user
// profile have no other writer. It consumes the request primitive for every
// server round trip and relies on its single built-in refresh-retry; no
// operation here retries beyond that.
type Manager struct {
	client   *apiclient.Client
	repo     credstore.Repo
	log      zerolog.Logger
	navigate Navigator
	nowTime  func() time.Time // nowTime function (injectable for testing)

	lock        sync.Mutex
	status      Status
	profile     *users.Profile
	subscribers []func(Snapshot)
}

// Option defines a function type to modify the Manager instance.
type Option func(*Manager)

// WithNavigator sets the redirect signal receiver.
func WithNavigator(nav Navigator) Option {
	return func(m *Manager) {
		m.navigate = nav
	}
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// New initializes a Manager with required dependencies. The session starts
// in StatusLoading; call Bootstrap to resolve it.
func New(client *apiclient.Client, repo credstore.Repo, options ...Option) (*Manager, error) {
	if client == nil {
		return nil, errors.New("[session.New] api client is required")
	}
	if repo == nil {
		return nil, errors.New("[session.New] credential repo is required")
	}

	manager := &Manager{
		client:   client,
		repo:     repo,
		log:      zerolog.Nop(),
		navigate: func(string) {},
		nowTime:  time.Now,
		status:   StatusLoading,
	}
	for _, opt := range options {
		opt(manager)
	}
	return manager, nil
}

// Subscribe registers fn to run after every status transition. The initial
// state is not replayed; read Snapshot for that.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.lock.Lock()
	defer m.lock.Unlock()
	return Snapshot{Status: m.status, User: m.profile}
}

// Status returns the current lifecycle state.
func (m *Manager) Status() Status {
	return m.Snapshot().Status
}

// CurrentUser returns the cached profile, or nil while not authenticated.
func (m *Manager) CurrentUser() *users.Profile {
	return m.Snapshot().User
}

// Bootstrap resolves the initial session from persisted credentials: stored
// pair → profile fetch → Authenticated; anything else → Anonymous. A
// profile-fetch failure clears the stored pair so the next run starts clean.
func (m *Manager) Bootstrap(ctx context.Context) error {
	creds, err := m.repo.Credentials()
	if err != nil {
		return errors.Wrap(err, "[Manager.Bootstrap] read credentials")
	}
	if !creds.Valid() {
		m.transition(StatusAnonymous, nil)
		return nil
	}

	if creds.AccessExpired(m.nowTime()) {
		m.log.Debug().Msg("stored access token expired, refresh expected on first request")
	}

	profile, err := m.fetchProfile(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("bootstrap profile fetch failed")
		if clearErr := m.repo.Clear(); clearErr != nil {
			m.log.Error().Err(clearErr).Msg("clearing credentials failed")
		}
		m.transition(StatusAnonymous, nil)
		return nil
	}

	m.transition(StatusAuthenticated, profile)
	return nil
}

// Login exchanges a username and password for a token pair, fetches the
// profile and signals navigation to the landing view. A rejected exchange
// fails with InvalidCredentialsErr wrapping the server's response.
// Concurrent calls are not coalesced; the caller disables its submit
// control while one is in flight.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.transition(StatusLoading, nil)

	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var pair credstore.Credentials
	err := m.client.DoOnce(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Body:   payload,
	}, &pair)
	if err != nil {
		m.transition(StatusAnonymous, nil)
		var reqErr *apiclient.RequestError
		if errors.As(err, &reqErr) && reqErr.Status >= 400 && reqErr.Status < 500 {
			return fmt.Errorf("%w: %w", InvalidCredentialsErr, reqErr)
		}
		return errors.Wrap(err, "[Manager.Login] token request")
	}

	if err := m.repo.SetCredentials(&pair); err != nil {
		m.transition(StatusAnonymous, nil)
		return errors.Wrap(err, "[Manager.Login] persist credentials")
	}

	profile, err := m.fetchProfile(ctx)
	if err != nil {
		if clearErr := m.repo.Clear(); clearErr != nil {
			m.log.Error().Err(clearErr).Msg("clearing credentials failed")
		}
		m.transition(StatusAnonymous, nil)
		return errors.Wrap(err, "[Manager.Login] fetch profile")
	}

	m.transition(StatusAuthenticated, profile)
	m.log.Info().Str("username", profile.Username).Msg("logged in")
	m.navigate(LandingView)
	return nil
}

// Register creates an account and, on success, logs in with the same
// credentials; registration does not by itself establish a session. A
// validation rejection fails with a RegistrationError carrying the
// aggregated field messages.
func (m *Manager) Register(ctx context.Context, data users.RegisterData) error {
	err := m.client.DoOnce(ctx, apiclient.Request{
		Method: http.MethodPost,
		Path:   usersPath,
		Body:   data,
	}, nil)
	if err != nil {
		var reqErr *apiclient.RequestError
		if errors.As(err, &reqErr) {
			return &RegistrationError{Message: reqErr.Message}
		}
		return errors.Wrap(err, "[Manager.Register] create account")
	}

	return m.Login(ctx, data.Username, data.Password)
}

// Logout tears the session down. The server round trip is best-effort; a
// network failure is logged and swallowed because logging out must always
// succeed locally. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) error {
	creds, err := m.repo.Credentials()
	if err == nil && creds.Valid() {
		if err := m.client.DoOnce(ctx, apiclient.Request{
			Method: http.MethodPost,
			Path:   logoutPath,
		}, nil); err != nil {
			m.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}

	clearErr := m.repo.Clear()
	m.transition(StatusAnonymous, nil)
	m.navigate(LoginBoundary)
	if clearErr != nil {
		return errors.Wrap(clearErr, "[Manager.Logout] clear credentials")
	}
	return nil
}

// UpdateProfile issues an authenticated PATCH and replaces the cached
// profile with the server's response. Interleaved updates resolve as last
// write wins; the replacement happens under the lock so the record itself
// cannot be corrupted.
func (m *Manager) UpdateProfile(ctx context.Context, update users.ProfileUpdate) (*users.Profile, error) {
	var updated users.Profile
	err := m.client.Do(ctx, apiclient.Request{
		Method: http.MethodPatch,
		Path:   mePath,
		Body:   update,
	}, &updated)
	if err != nil {
		return nil, err
	}

	if err := m.repo.SetProfile(&updated); err != nil {
		return nil, errors.Wrap(err, "[Manager.UpdateProfile] persist profile")
	}
	m.transition(StatusAuthenticated, &updated)
	return &updated, nil
}

// ChangePassword ships the current and replacement password. The caller
// verifies any confirmation field itself before invoking; this layer does
// not re-validate. A rejected current password fails with
// InvalidCredentialsErr wrapping the server's response.
func (m *Manager) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	payload := users.PasswordChange{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}

	err := m.client.Do(ctx, apiclient.Request{
		Method: http.MethodPatch,
		Path:   mePath,
		Body:   payload,
	}, nil)
	if err == nil {
		return nil
	}

	var reqErr *apiclient.RequestError
	if errors.As(err, &reqErr) && (reqErr.Status == http.StatusBadRequest || reqErr.Status == http.StatusForbidden) {
		return fmt.Errorf("%w: %w", InvalidCredentialsErr, reqErr)
	}
	return err
}

// Expire is the API client's session-expired signal: in-memory state drops
// to Anonymous and the navigator is pointed at the login boundary. The
// client has already cleared the persisted pair.
func (m *Manager) Expire() {
	m.log.Info().Msg("session expired")
	m.transition(StatusAnonymous, nil)
	m.navigate(LoginBoundary)
}

func (m *Manager) fetchProfile(ctx context.Context) (*users.Profile, error) {
	var profile users.Profile
	if err := m.client.Do(ctx, apiclient.Request{Path: mePath}, &profile); err != nil {
		return nil, err
	}
	if err := m.repo.SetProfile(&profile); err != nil {
		return nil, errors.Wrap(err, "[Manager.fetchProfile] persist profile")
	}
	return &profile, nil
}

// transition swaps the session state and notifies subscribers outside the
// lock.
func (m *Manager) transition(status Status, profile *users.Profile) {
	m.lock.Lock()
	m.status = status
	m.profile = profile
	subscribers := make([]func(Snapshot), len(m.subscribers))
	copy(subscribers, m.subscribers)
	snapshot := Snapshot{Status: status, User: profile}
	m.lock.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}
