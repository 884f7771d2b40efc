package users

import (
	"net/http"
	"time"

	"github.com/asbbic/membership/pkg/token"
)

func (u *User) SetJWTCookie(w http.ResponseWriter, accessToken, refreshToken string) error {
	sameSite := http.SameSiteLaxMode
	accessTokenExpirationTime := token.AccessTokenExpirationTime
	if u.Config.IsDev {
		sameSite = http.SameSiteNoneMode
		accessTokenExpirationTime = time.Hour * 24 * 3
	}

	accessCookie := http.Cookie{
		Name:     token.AccessTokenName,
		Value:    accessToken,
		HttpOnly: true,
		Expires:  time.Now().Add(accessTokenExpirationTime),
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
	}

	refreshCookie := http.Cookie{
		Name:     token.RefreshTokenName,
		Value:    refreshToken,
		HttpOnly: true,
		Expires:  time.Now().Add(token.RefreshTokenExpirationTime),
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
	}

	http.SetCookie(w, &accessCookie)
	http.SetCookie(w, &refreshCookie)

	return nil
}

// ClearJWTCookie expires both auth cookies.
func (u *User) ClearJWTCookie(w http.ResponseWriter) {
	for _, name := range []string{token.AccessTokenName, token.RefreshTokenName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: true,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			Secure:   true,
			Path:     "/",
		})
	}
}
