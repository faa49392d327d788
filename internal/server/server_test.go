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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/appwrite/sdk-for-go/models"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cogniteo/appwrite-clients/pkg/appwrite"
	"github.com/cogniteo/appwrite-clients/pkg/session"
)

type fakeAccount struct {
	user      *models.User
	getErr    error
	created   *models.Session
	createErr error
	gotUserID string
	gotSecret string
}

func (f *fakeAccount) Get() (*models.User, error) {
	return f.user, f.getErr
}

func (f *fakeAccount) CreateSession(userID string, secret string) (*models.Session, error) {
	f.gotUserID, f.gotSecret = userID, secret
	return f.created, f.createErr
}

// fakeBackend applies the real session cookie rules and hands out fakeAccount
type fakeBackend struct {
	account     *fakeAccount
	adminErr    error
	sessionSeen string
}

func (f *fakeBackend) SessionAccount(ctx context.Context, cookies session.Store) (AccountReader, error) {
	cookie, err := cookies.Cookie(ctx, session.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, appwrite.ErrNoSession
	}
	f.sessionSeen = cookie.Value
	return f.account, nil
}

func (f *fakeBackend) AdminAccount(context.Context) (SessionCreator, error) {
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	return f.account, nil
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

var _ = Describe("Server", func() {
	var (
		account *fakeAccount
		backend *fakeBackend
		srv     *Server
	)

	BeforeEach(func() {
		account = &fakeAccount{}
		backend = &fakeBackend{account: account}
		srv = New(backend, logr.Discard())
	})

	It("reports healthy", func() {
		rec := serve(srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
	})

	Context("GET /api/account", func() {
		It("returns the session user's account", func() {
			account.user = &models.User{Id: "u1", Name: "Ada", Email: "ada@example.com"}

			req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
			req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: "tok123"})
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(backend.sessionSeen).To(Equal("tok123"))
			Expect(rec.Body.String()).To(ContainSubstring("ada@example.com"))
		})

		It("rejects requests without a session cookie", func() {
			rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/account", nil))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			var body map[string]string
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["error"]).To(Equal("no session"))
		})

		It("maps upstream failures to bad gateway", func() {
			account.getErr = errors.New("user_unauthorized")

			req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
			req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: "expired"})
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})
	})

	Context("POST /api/session", func() {
		It("stores the session secret in the session cookie", func() {
			account.created = &models.Session{Secret: "sess-secret", Expire: "2030-01-01T00:00:00Z"}

			req := httptest.NewRequest(http.MethodPost, "/api/session",
				strings.NewReader(`{"userId":"u1","secret":"otp"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(account.gotUserID).To(Equal("u1"))
			Expect(account.gotSecret).To(Equal("otp"))

			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(session.SessionCookieName))
			Expect(cookies[0].Value).To(Equal("sess-secret"))
			Expect(cookies[0].HttpOnly).To(BeTrue())
			Expect(cookies[0].Path).To(Equal("/"))
		})

		It("rejects incomplete bodies", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"userId":"u1"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("reports unavailable when admin clients are disabled", func() {
			backend.adminErr = ErrAdminDisabled

			req := httptest.NewRequest(http.MethodPost, "/api/session",
				strings.NewReader(`{"userId":"u1","secret":"otp"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(rec.Result().Cookies()).To(BeEmpty())
		})

		It("logs an unparsable expiry and issues a browser-session cookie", func() {
			var logged []string
			log := funcr.New(func(prefix, args string) {
				logged = append(logged, args)
			}, funcr.Options{Verbosity: 1})
			srv = New(backend, log)
			account.created = &models.Session{Secret: "sess-secret", Expire: "next tuesday"}

			req := httptest.NewRequest(http.MethodPost, "/api/session",
				strings.NewReader(`{"userId":"u1","secret":"otp"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Expires.IsZero()).To(BeTrue())
			Expect(logged).To(ContainElement(And(
				ContainSubstring("Unparsable session expiry"),
				ContainSubstring("next tuesday"))))
		})

		It("fails when the admin client cannot be built", func() {
			backend.adminErr = errors.New("connection refused")

			req := httptest.NewRequest(http.MethodPost, "/api/session",
				strings.NewReader(`{"userId":"u1","secret":"otp"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
			Expect(rec.Result().Cookies()).To(BeEmpty())
		})
	})

	Context("with the Appwrite factory backend", func() {
		BeforeEach(func() {
			srv = New(NewBackend(mustFactory()), logr.Discard())
		})

		It("rejects requests without a session before calling Appwrite", func() {
			rec := serve(srv, httptest.NewRequest(http.MethodGet, "/api/account", nil))
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("rejects an empty session cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/account", nil)
			req.AddCookie(&http.Cookie{Name: session.SessionCookieName, Value: ""})
			rec := serve(srv, req)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("reports unavailable for sign-in without a secret key", func() {
			factory, err := appwrite.NewFactory(appwrite.StaticConfig{
				EndpointURL: "https://x",
				ProjectID:   "p1",
			})
			Expect(err).NotTo(HaveOccurred())
			srv = New(NewBackend(factory), logr.Discard())

			req := httptest.NewRequest(http.MethodPost, "/api/session",
				strings.NewReader(`{"userId":"u1","secret":"otp"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := serve(srv, req)

			Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		})

		It("hands out account services for both paths", func() {
			cookies := session.NewMapStore(map[string]string{session.SessionCookieName: "tok123"})

			reader, err := NewBackend(mustFactory()).SessionAccount(context.Background(), cookies)
			Expect(err).NotTo(HaveOccurred())
			Expect(reader).NotTo(BeNil())

			creator, err := NewBackend(mustFactory()).AdminAccount(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(creator).NotTo(BeNil())
		})
	})
})

func mustFactory() *appwrite.Factory {
	factory, err := appwrite.NewFactory(appwrite.StaticConfig{
		EndpointURL: "https://x",
		ProjectID:   "p1",
		SecretKey:   "s1",
	})
	Expect(err).NotTo(HaveOccurred())
	return factory
}
