// Package cookie writes and reads the accessToken and refreshToken cookies.
package cookie

import (
	"net/http"
	"time"

	"gatekeeper/config"

	"github.com/labstack/echo/v4"
)

const (
	AccessTokenName  = "accessToken"
	RefreshTokenName = "refreshToken"

	accessTokenMaxAge  = 15 * time.Minute
	refreshTokenMaxAge = 31540000 * time.Second
)

// Jar applies one cookie policy to both token cookies: httpOnly, SameSite=Lax,
// and domain, path and secure taken from config. Only Max-Age differs.
type Jar struct {
	domain string
	path   string
	secure bool
}

// NewJar builds the jar from the cookie section of the configuration.
func NewJar(cfg *config.Config) *Jar {
	jar := &Jar{path: "/"}
	if cfg.Cookie != nil {
		jar.domain = cfg.Cookie.Domain
		jar.secure = cfg.Cookie.Secure
		if cfg.Cookie.Path != "" {
			jar.path = cfg.Cookie.Path
		}
	}

	return jar
}

// SetTokens sets both cookies after a login.
func (j *Jar) SetTokens(c echo.Context, accessToken, refreshToken string) {
	j.SetAccessToken(c, accessToken)
	c.SetCookie(j.build(RefreshTokenName, refreshToken, refreshTokenMaxAge))
}

// SetAccessToken sets only the access cookie, as done on silent refresh.
func (j *Jar) SetAccessToken(c echo.Context, accessToken string) {
	c.SetCookie(j.build(AccessTokenName, accessToken, accessTokenMaxAge))
}

// Clear expires both cookies.
func (j *Jar) Clear(c echo.Context) {
	for _, name := range []string{AccessTokenName, RefreshTokenName} {
		ck := j.build(name, "", 0)
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		c.SetCookie(ck)
	}
}

// Read returns the value of the named cookie, or "" when absent.
func Read(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}

	return ck.Value
}

func (j *Jar) build(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   j.domain,
		Path:     j.path,
		MaxAge:   int(maxAge / time.Second),
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
