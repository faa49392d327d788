/*
Copyright 2025 Piotr Janik.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package session

import (
	"context"
	"net/http"
	"time"
)

// SessionCookieName is the cookie holding the Appwrite session secret
const SessionCookieName = "appwrite-session"

// Store defines read access to the cookies of the current request
type Store interface {
	// Cookie returns the named cookie, or http.ErrNoCookie if it is not set
	Cookie(ctx context.Context, name string) (*http.Cookie, error)
}

// StoreFunc adapts a function to the Store interface
type StoreFunc func(ctx context.Context, name string) (*http.Cookie, error)

// Cookie calls f(ctx, name)
func (f StoreFunc) Cookie(ctx context.Context, name string) (*http.Cookie, error) {
	return f(ctx, name)
}

// RequestStore reads cookies from an incoming HTTP request
type RequestStore struct {
	Request *http.Request
}

// NewRequestStore creates a Store backed by the cookies of r
func NewRequestStore(r *http.Request) *RequestStore {
	return &RequestStore{Request: r}
}

// Cookie returns the named cookie from the request
func (s *RequestStore) Cookie(_ context.Context, name string) (*http.Cookie, error) {
	if s.Request == nil {
		return nil, http.ErrNoCookie
	}
	return s.Request.Cookie(name)
}

// NewSessionCookie builds the cookie that carries a session secret back to the browser.
// A zero expire produces a browser-session cookie.
func NewSessionCookie(secret string, expire time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    secret,
		Path:     "/",
		Expires:  expire,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
