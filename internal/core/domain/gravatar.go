package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
)

const gravatarBaseURL = "https://secure.gravatar.com/avatar"

// GravatarOptions tunes the avatar URL. Zero values fall back to size 100,
// the "identicon" placeholder and the "g" rating.
type GravatarOptions struct {
	Size    int
	Default string
	Rating  string
}

func (o GravatarOptions) withDefaults() GravatarOptions {
	if o.Size <= 0 {
		o.Size = 100
	}
	if o.Default == "" {
		o.Default = "identicon"
	}
	if o.Rating == "" {
		o.Rating = "g"
	}
	return o
}

// GravatarHash returns the hex MD5 digest Gravatar keys avatars by.
func GravatarHash(email string) string {
	sum := md5.Sum([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}

// Gravatar returns the avatar URL for the user's email.
func (u *User) Gravatar(opts GravatarOptions) string {
	opts = opts.withDefaults()
	return fmt.Sprintf("%s/%s?s=%s&d=%s&r=%s",
		gravatarBaseURL,
		GravatarHash(u.Email),
		strconv.Itoa(opts.Size),
		url.QueryEscape(opts.Default),
		url.QueryEscape(opts.Rating),
	)
}
