package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/feeds"
	internalcomments "github.com/goliatone/go-blog/internal/comments"
	internalfeeds "github.com/goliatone/go-blog/internal/feeds"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	internalobjects "github.com/goliatone/go-blog/internal/objects"
	"github.com/goliatone/go-blog/internal/rss"
	internalusers "github.com/goliatone/go-blog/internal/users"
	"github.com/goliatone/go-blog/users"
)

type stubOAuth struct {
	profile users.GithubProfile
}

func (s *stubOAuth) AuthorizeURL(state string) string {
	return "https://github.test/login/oauth/authorize?state=" + state
}

func (s *stubOAuth) Exchange(ctx context.Context, code string) (users.GithubProfile, error) {
	return s.profile, nil
}

type fixture struct {
	server *httptest.Server
	token  string
	feeds  feeds.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	feedSvc := internalfeeds.NewService(
		internalfeeds.NewMemoryFeedRepository(),
		internalfeeds.NewMemoryTagRepository(),
	)
	commentSvc := internalcomments.NewService(
		internalcomments.NewMemoryCommentRepository(),
		feedSvc,
	)

	issuer, err := internalusers.NewHMACTokenIssuer([]byte("test-secret"))
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	oauth := &stubOAuth{profile: users.GithubProfile{ID: 7, Login: "admin", AvatarURL: "https://a.test/p.png"}}
	userSvc := internalusers.NewService(internalusers.NewMemoryUserRepository(), oauth, issuer)

	objectSvc := internalobjects.NewService(
		internalobjects.NewMemoryProvider("https://cdn.test"),
		internalobjects.NewMemoryObjectRepository(),
	)

	seoSvc, err := rss.NewService(feedSvc, rss.Config{
		Title: "Test Blog",
		Routes: urlkit.NewRouteManager(&urlkit.Config{
			Groups: []urlkit.GroupConfig{{
				Name:    "site",
				BaseURL: "https://blog.test",
				Paths: map[string]string{
					"home":    "/",
					"feed":    "/feed/:ref",
					"sitemap": "/sitemap.xml",
				},
			}},
		}),
	})
	if err != nil {
		t.Fatalf("rss service: %v", err)
	}

	api := bloghttp.NewAPI(
		bloghttp.WithFeedService(feedSvc),
		bloghttp.WithCommentService(commentSvc),
		bloghttp.WithUserService(userSvc),
		bloghttp.WithObjectService(objectSvc),
		bloghttp.WithSEOService(seoSvc),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	_, token, err := userSvc.LoginWithCode(context.Background(), "test-code")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	return &fixture{server: server, token: token, feeds: feedSvc}
}

func (f *fixture) request(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()
	var out T
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func (f *fixture) createFeed(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	res := f.request(t, http.MethodPost, "/feed", payload, f.token)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create feed status = %d", res.StatusCode)
	}
	return decodeBody[map[string]any](t, res)
}

func TestFeedCreateRequiresAuth(t *testing.T) {
	f := newFixture(t)

	res := f.request(t, http.MethodPost, "/feed", map[string]any{"title": "x", "content": "y"}, "")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.StatusCode)
	}
	body := decodeBody[map[string]string](t, res)
	if body["message"] != "Permission denied" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestFeedCreateAndResolve(t *testing.T) {
	f := newFixture(t)

	created := f.createFeed(t, map[string]any{
		"title":   "Hello HTTP",
		"content": "Body text.",
		"alias":   "hello-http",
		"tags":    []string{"go"},
	})
	if created["title"] != "Hello HTTP" {
		t.Fatalf("title = %v", created["title"])
	}

	res := f.request(t, http.MethodGet, "/feed/hello-http", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("resolve status = %d", res.StatusCode)
	}
	fetched := decodeBody[map[string]any](t, res)
	if fetched["id"] != created["id"] {
		t.Fatal("alias lookup returned a different feed")
	}

	res = f.request(t, http.MethodGet, fmt.Sprintf("/feed/%v", created["id"]), nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("id lookup status = %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestFeedCreateValidation(t *testing.T) {
	f := newFixture(t)

	res := f.request(t, http.MethodPost, "/feed", map[string]any{"content": "no title"}, f.token)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
	body := decodeBody[map[string]string](t, res)
	if !strings.Contains(body["message"], "title") {
		t.Fatalf("message should pass through: %q", body["message"])
	}
}

func TestFeedAliasConflict(t *testing.T) {
	f := newFixture(t)
	f.createFeed(t, map[string]any{"title": "One", "content": "a", "alias": "taken"})

	res := f.request(t, http.MethodPost, "/feed", map[string]any{"title": "Two", "content": "b", "alias": "taken"}, f.token)
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", res.StatusCode)
	}
	res.Body.Close()
}

func TestFeedListHidesDrafts(t *testing.T) {
	f := newFixture(t)
	f.createFeed(t, map[string]any{"title": "Public", "content": "a"})
	f.createFeed(t, map[string]any{"title": "Secret", "content": "b", "draft": true})

	res := f.request(t, http.MethodGet, "/feed", nil, "")
	list := decodeBody[[]map[string]any](t, res)
	if len(list) != 1 || list[0]["title"] != "Public" {
		t.Fatalf("anonymous list = %+v", list)
	}

	res = f.request(t, http.MethodGet, "/feed?drafts=true", nil, f.token)
	list = decodeBody[[]map[string]any](t, res)
	if len(list) != 2 {
		t.Fatalf("admin list with drafts = %+v", list)
	}

	// Anonymous callers cannot opt into drafts.
	res = f.request(t, http.MethodGet, "/feed?drafts=true", nil, "")
	list = decodeBody[[]map[string]any](t, res)
	if len(list) != 1 {
		t.Fatalf("anonymous drafts list = %+v", list)
	}
}

func TestFeedGetDraftHiddenFromAnonymous(t *testing.T) {
	f := newFixture(t)
	created := f.createFeed(t, map[string]any{"title": "WIP", "content": "x", "alias": "wip", "draft": true})

	res := f.request(t, http.MethodGet, "/feed/wip", nil, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("anonymous draft status = %d, want 404", res.StatusCode)
	}
	res.Body.Close()

	res = f.request(t, http.MethodGet, "/feed/wip", nil, f.token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("admin draft status = %d", res.StatusCode)
	}
	fetched := decodeBody[map[string]any](t, res)
	if fetched["id"] != created["id"] {
		t.Fatal("admin should see the draft")
	}
}

func TestFeedUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	created := f.createFeed(t, map[string]any{"title": "Before", "content": "x", "alias": "post"})

	res := f.request(t, http.MethodPost, "/feed/post", map[string]any{"title": "After"}, f.token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", res.StatusCode)
	}
	updated := decodeBody[map[string]any](t, res)
	if updated["title"] != "After" || updated["id"] != created["id"] {
		t.Fatalf("update result = %+v", updated)
	}

	res = f.request(t, http.MethodDelete, "/feed/post", nil, f.token)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", res.StatusCode)
	}
	res.Body.Close()

	res = f.request(t, http.MethodGet, "/feed/post", nil, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("deleted feed status = %d, want 404", res.StatusCode)
	}
	res.Body.Close()
}

func TestTagList(t *testing.T) {
	f := newFixture(t)
	f.createFeed(t, map[string]any{"title": "A", "content": "x", "tags": []string{"go", "web"}})
	f.createFeed(t, map[string]any{"title": "B", "content": "y", "tags": []string{"go"}})

	res := f.request(t, http.MethodGet, "/tag", nil, "")
	tags := decodeBody[[]map[string]any](t, res)
	if len(tags) != 2 {
		t.Fatalf("tags = %+v", tags)
	}
}

func TestCommentFlow(t *testing.T) {
	f := newFixture(t)
	created := f.createFeed(t, map[string]any{"title": "Post", "content": "x"})
	feedID := created["id"].(string)

	res := f.request(t, http.MethodPost, "/comment", map[string]any{
		"feed_id": feedID,
		"author":  "visitor",
		"content": "nice post",
	}, "")
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("comment status = %d", res.StatusCode)
	}
	comment := decodeBody[map[string]any](t, res)

	res = f.request(t, http.MethodGet, "/comment?feed="+feedID, nil, "")
	thread := decodeBody[[]map[string]any](t, res)
	if len(thread) != 1 || thread[0]["author"] != "visitor" {
		t.Fatalf("thread = %+v", thread)
	}

	// Moderation requires admin.
	commentID := comment["id"].(string)
	res = f.request(t, http.MethodDelete, "/comment/"+commentID, nil, "")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("anonymous delete status = %d", res.StatusCode)
	}
	res.Body.Close()

	res = f.request(t, http.MethodDelete, "/comment/"+commentID, nil, f.token)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete status = %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestCommentValidation(t *testing.T) {
	f := newFixture(t)

	res := f.request(t, http.MethodPost, "/comment", map[string]any{
		"feed_id": uuid.NewString(),
		"author":  "visitor",
		"content": "hello",
	}, "")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown feed status = %d, want 404", res.StatusCode)
	}
	res.Body.Close()
}

func TestStorageUpload(t *testing.T) {
	f := newFixture(t)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("file", "photo.PNG")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte("image-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/storage", &form)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+f.token)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d", res.StatusCode)
	}
	object := decodeBody[map[string]any](t, res)

	key, _ := object["key"].(string)
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("key should carry the lowercased extension: %q", key)
	}

	res = f.request(t, http.MethodGet, "/storage/generate-presigned-url?objectKey="+key, nil, f.token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("presign status = %d", res.StatusCode)
	}
	signed := decodeBody[map[string]string](t, res)
	if !strings.Contains(signed["url"], "signature=") {
		t.Fatalf("signed url = %q", signed["url"])
	}
}

func TestStorageRequiresAuth(t *testing.T) {
	f := newFixture(t)
	res := f.request(t, http.MethodPost, "/storage", nil, "")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", res.StatusCode)
	}
	res.Body.Close()
}

func TestProfile(t *testing.T) {
	f := newFixture(t)

	res := f.request(t, http.MethodGet, "/user/profile", nil, f.token)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("profile status = %d", res.StatusCode)
	}
	profile := decodeBody[map[string]any](t, res)
	if profile["username"] != "admin" {
		t.Fatalf("profile = %+v", profile)
	}

	res = f.request(t, http.MethodGet, "/user/profile", nil, "garbage")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("garbage token status = %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestGithubLoginRedirect(t *testing.T) {
	f := newFixture(t)

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	res, err := client.Get(f.server.URL + "/user/github")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", res.StatusCode)
	}
	location := res.Header.Get("Location")
	if !strings.Contains(location, "state=") {
		t.Fatalf("redirect location = %q", location)
	}
	var stateCookie bool
	for _, cookie := range res.Cookies() {
		if cookie.Name == "blog_oauth_state" {
			stateCookie = true
		}
	}
	if !stateCookie {
		t.Fatal("state cookie missing")
	}
}

func TestSyndicationEndpoints(t *testing.T) {
	f := newFixture(t)
	f.createFeed(t, map[string]any{"title": "Syndicated", "content": "x", "alias": "syndicated"})

	res := f.request(t, http.MethodGet, "/rss", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("rss status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.Contains(ct, "rss+xml") {
		t.Fatalf("rss content type = %q", ct)
	}
	res.Body.Close()

	res = f.request(t, http.MethodGet, "/sitemap.xml", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("sitemap status = %d", res.StatusCode)
	}
	res.Body.Close()

	res = f.request(t, http.MethodGet, "/robots.txt", nil, "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("robots status = %d", res.StatusCode)
	}
	res.Body.Close()
}
