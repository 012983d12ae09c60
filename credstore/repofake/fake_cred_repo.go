package repofake

import (
	"sync"

	"github.com/stocklens/go-inventory-client/credstore"
	"github.com/stocklens/go-inventory-client/users"
)

var _ credstore.Repo = (*FakeCredRepo)(nil)

// FakeCredRepo is an in-memory credential store for tests.
type FakeCredRepo struct {
	creds   *credstore.Credentials
	profile *users.Profile
	lock    sync.RWMutex

	// FailWrites makes every mutation return this error when non-nil.
	FailWrites error
}

func NewFakeCredRepo() *FakeCredRepo {
	return &FakeCredRepo{}
}

func (cr *FakeCredRepo) Credentials() (*credstore.Credentials, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if !cr.creds.Valid() {
		return nil, nil
	}
	copied := *cr.creds
	return &copied, nil
}

func (cr *FakeCredRepo) SetCredentials(creds *credstore.Credentials) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWrites != nil {
		return cr.FailWrites
	}
	if creds == nil {
		cr.creds = nil
		return nil
	}
	copied := *creds
	cr.creds = &copied
	return nil
}

func (cr *FakeCredRepo) Profile() (*users.Profile, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	if cr.profile == nil {
		return nil, nil
	}
	copied := *cr.profile
	return &copied, nil
}

func (cr *FakeCredRepo) SetProfile(profile *users.Profile) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWrites != nil {
		return cr.FailWrites
	}
	if profile == nil {
		cr.profile = nil
		return nil
	}
	copied := *profile
	cr.profile = &copied
	return nil
}

func (cr *FakeCredRepo) Clear() error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if cr.FailWrites != nil {
		return cr.FailWrites
	}
	cr.creds = nil
	cr.profile = nil
	return nil
}
