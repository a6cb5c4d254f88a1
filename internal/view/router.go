// Package view models role-gated navigation as a pure state machine. The
// router owns no I/O; callers feed it auth-state notifications and user
// actions and render whatever screen it lands on.
package view

import (
	"room-booking/internal/data/entity"
)

type Screen string

const (
	ScreenLoading       Screen = "loading"
	ScreenLogin         Screen = "login"
	ScreenCreateAccount Screen = "create-account"
	ScreenPatron        Screen = "patron"
	ScreenAdmin         Screen = "admin"
)

// Router starts on the loading screen and stays there until the first auth
// notification arrives. There is no terminal state; logout returns to login.
type Router struct {
	current Screen
}

func NewRouter() *Router {
	return &Router{current: ScreenLoading}
}

func (r *Router) Current() Screen {
	return r.current
}

// AuthChanged handles an auth-state notification. An authenticated account
// lands on its role's screen; anything else falls back to the login screen.
func (r *Router) AuthChanged(authenticated bool, role entity.MemberRole) Screen {
	if !authenticated {
		r.current = ScreenLogin
		return r.current
	}

	r.current = ScreenForRole(role)
	return r.current
}

// ShowCreateAccount toggles to the create-account form. Only reachable while
// unauthenticated on the login screen.
func (r *Router) ShowCreateAccount() Screen {
	if r.current == ScreenLogin {
		r.current = ScreenCreateAccount
	}
	return r.current
}

// BackToLogin leaves the create-account form.
func (r *Router) BackToLogin() Screen {
	if r.current == ScreenCreateAccount {
		r.current = ScreenLogin
	}
	return r.current
}

// Logout drops any authenticated screen back to login.
func (r *Router) Logout() Screen {
	if r.current == ScreenPatron || r.current == ScreenAdmin {
		r.current = ScreenLogin
	}
	return r.current
}

// ScreenForRole maps a role to its screen. Unknown roles default to the
// patron view, matching how accounts are always created as patrons.
func ScreenForRole(role entity.MemberRole) Screen {
	if role == entity.RoleAdmin {
		return ScreenAdmin
	}
	return ScreenPatron
}
