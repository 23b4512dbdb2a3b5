package app

import (
	"context"
	"crypto/subtle"

	"github.com/same7samy00/ysk-sales/internal/model"
)

// Authenticate checks a login against the user directory and sets
// CurrentUser on success. Only active users may log in. Passwords are
// compared in constant time but stored in plaintext; that storage format
// is inherited and recorded as a known weakness.
func (a *App) Authenticate(name, password string) (*model.User, error) {
	for i := range a.Users {
		u := a.Users[i]
		if u.Name != name {
			continue
		}
		if !u.Active() {
			return nil, validationErr(ErrCodeBadCredentials, "account is inactive")
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
			return nil, validationErr(ErrCodeBadCredentials, "wrong username or password")
		}
		a.CurrentUser = &a.Users[i]
		return a.CurrentUser, nil
	}
	return nil, validationErr(ErrCodeBadCredentials, "wrong username or password")
}

// Logout clears the authenticated user.
func (a *App) Logout() { a.CurrentUser = nil }

// HasPermission reports whether u may open page. The bootstrap admin has
// implicit full permissions regardless of the stored map.
func HasPermission(u *model.User, page model.Page) bool {
	if u == nil {
		return false
	}
	if u.ID == model.AdminUserID {
		return true
	}
	return u.Permissions[page]
}

// PutUser adds or updates a user. The bootstrap admin always keeps access
// to the settings page, whatever the submitted permission map says.
func (a *App) PutUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Permissions == nil {
		u.Permissions = map[model.Page]bool{}
	}
	if u.ID == model.AdminUserID {
		u.Permissions[model.PageSettings] = true
	}

	users := make([]model.User, len(a.Users))
	copy(users, a.Users)
	updated := false
	for i, other := range users {
		if other.ID == u.ID {
			users[i] = u
			updated = true
			break
		}
	}
	if !updated {
		users = append(users, u)
	}
	if err := a.SaveUsers(ctx, users); err != nil {
		return model.User{}, err
	}
	if a.CurrentUser != nil && a.CurrentUser.ID == u.ID {
		a.CurrentUser = &u
	}
	return u, nil
}

// DeleteUser removes a user. The roster must never be emptied and the
// authenticated user may not delete themself.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	if len(a.Users) <= 1 {
		return validationErr(ErrCodeLastUser, "at least one user must remain")
	}
	if a.CurrentUser != nil && a.CurrentUser.ID == id {
		return validationErr(ErrCodeSelfDelete, "you cannot delete your own account")
	}

	users := make([]model.User, 0, len(a.Users))
	found := false
	for _, u := range a.Users {
		if u.ID == id {
			found = true
			continue
		}
		users = append(users, u)
	}
	if !found {
		return validationErr(ErrCodeNotFound, "user %q not found", id)
	}
	return a.SaveUsers(ctx, users)
}
