package common

import "time"

// SessionCookieName is the cookie that carries the admin session token.
const SessionCookieName = "admin_token"

// DefaultTokenValidity is the lifetime of an admin session token and cookie.
const DefaultTokenValidity = 8 * time.Hour
