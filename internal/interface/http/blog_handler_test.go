package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
)

func seedBlog(env *testEnv, status entity.BlogStatus) *entity.Blog {
	b := &entity.Blog{
		ID:          uuid.NewString(),
		Title:       "Why donate",
		Thumbnail:   "https://cdn.x.com/t.png",
		Content:     "Blood saves lives.",
		AuthorName:  "Admin",
		AuthorEmail: "admin@x.com",
		AuthorRole:  entity.RoleAdmin,
		Status:      status,
	}
	env.blogs.blogs[b.ID] = b
	return b
}

func blogEnv() (*testEnv, string, string) {
	env := newTestEnv()
	adminUser := activeDonor("admin@x.com", "Admin")
	adminUser.Role = entity.RoleAdmin
	admin := env.addUser(adminUser)
	donor := env.addUser(activeDonor("donor@x.com", "Donor"))
	return env, admin, donor
}

func TestBlogCreateEndpoint(t *testing.T) {
	env, admin, donor := blogEnv()

	body := map[string]string{
		"title":     "Donation myths",
		"thumbnail": "https://cdn.x.com/m.png",
		"content":   "Debunking common myths.",
	}

	t.Run("admin creates a draft", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/blogs", admin, body)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeBody(t, w)
		id := resp["data"].(map[string]interface{})["id"].(string)
		assert.Equal(t, entity.BlogDraft, env.blogs.blogs[id].Status)
	})

	t.Run("any authenticated account may author a draft", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/blogs", donor, body)
		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeBody(t, w)
		id := resp["data"].(map[string]interface{})["id"].(string)
		created := env.blogs.blogs[id]
		assert.Equal(t, entity.BlogDraft, created.Status)
		assert.Equal(t, "donor@x.com", created.AuthorEmail)
		assert.Equal(t, entity.RoleDonor, created.AuthorRole)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/blogs", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields get 400", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/blogs", admin, map[string]string{"title": "Only a title"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBlogStatusEndpoint(t *testing.T) {
	t.Run("admin publishes and unpublishes", func(t *testing.T) {
		env, admin, _ := blogEnv()
		b := seedBlog(env, entity.BlogDraft)

		w := env.do(t, http.MethodPatch, "/blogs/"+b.ID+"/status", admin, map[string]string{"status": "published"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "blog published successfully")
		assert.Equal(t, entity.BlogPublished, env.blogs.blogs[b.ID].Status)

		w = env.do(t, http.MethodPatch, "/blogs/"+b.ID+"/status", admin, map[string]string{"status": "draft"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "blog unpublished successfully")
	})

	t.Run("non-admin gets 403 regardless of authorship", func(t *testing.T) {
		env, _, donor := blogEnv()
		b := seedBlog(env, entity.BlogDraft)
		b.AuthorEmail = "donor@x.com" // authorship grants nothing

		w := env.do(t, http.MethodPatch, "/blogs/"+b.ID+"/status", donor, map[string]string{"status": "published"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid status enum gets 400", func(t *testing.T) {
		env, admin, _ := blogEnv()
		b := seedBlog(env, entity.BlogDraft)

		w := env.do(t, http.MethodPatch, "/blogs/"+b.ID+"/status", admin, map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBlogListAndGet(t *testing.T) {
	env, _, donor := blogEnv()
	seedBlog(env, entity.BlogDraft)
	published := seedBlog(env, entity.BlogPublished)

	t.Run("status filter", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/blogs?status=published", donor, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].([]interface{})
		require.Len(t, data, 1)
		assert.Equal(t, published.ID, data[0].(map[string]interface{})["id"])
	})

	t.Run("read single blog", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/blogs/"+published.ID, donor, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		author := data["author"].(map[string]interface{})
		assert.Equal(t, "admin@x.com", author["email"])
	})

	t.Run("requires a token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/blogs", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBlogDeleteEndpoint(t *testing.T) {
	env, admin, donor := blogEnv()
	b := seedBlog(env, entity.BlogPublished)

	w := env.do(t, http.MethodDelete, "/blogs/"+b.ID, donor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/blogs/"+b.ID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/blogs/"+b.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
