package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/entity"
)

func TestCreateRequestEndpoint(t *testing.T) {
	t.Run("active donor creates a pending request", func(t *testing.T) {
		env := newTestEnv()
		token := env.addUser(activeDonor("donor@x.com", "Donor"))

		w := env.do(t, http.MethodPost, "/donation-requests", token, validRequestBody())
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]interface{})
		assert.NotEmpty(t, data["id"])
	})

	t.Run("blocked user gets 403", func(t *testing.T) {
		env := newTestEnv()
		u := activeDonor("blocked@x.com", "Blocked")
		u.Status = entity.UserBlocked
		token := env.addUser(u)

		w := env.do(t, http.MethodPost, "/donation-requests", token, validRequestBody())
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token gets 401", func(t *testing.T) {
		env := newTestEnv()
		w := env.do(t, http.MethodPost, "/donation-requests", "", validRequestBody())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields get 400", func(t *testing.T) {
		env := newTestEnv()
		token := env.addUser(activeDonor("donor@x.com", "Donor"))

		w := env.do(t, http.MethodPost, "/donation-requests", token, map[string]string{"recipientName": "Patient"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid blood group gets 400", func(t *testing.T) {
		env := newTestEnv()
		token := env.addUser(activeDonor("donor@x.com", "Donor"))

		body := validRequestBody()
		body["bloodGroup"] = "Q+"
		w := env.do(t, http.MethodPost, "/donation-requests", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPublicListingShowsPendingOnly(t *testing.T) {
	env := newTestEnv()
	owner := activeDonor("owner@x.com", "Owner")
	env.addUser(owner)
	pending := seedRequest(env, owner, entity.RequestPending)
	seedRequest(env, owner, entity.RequestInProgress)
	seedRequest(env, owner, entity.RequestDone)

	w := env.do(t, http.MethodGet, "/donation-requests/public", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.Equal(t, pending.ID, first["id"])
	assert.Equal(t, "pending", first["status"])
}

func TestUpdateRequestStripsProtectedFields(t *testing.T) {
	env := newTestEnv()
	owner := activeDonor("owner@x.com", "Owner")
	token := env.addUser(owner)
	dr := seedRequest(env, owner, entity.RequestPending)

	// the payload smuggles status and identity fields; they must not stick
	body := map[string]string{}
	for k, v := range validRequestBody() {
		body[k] = v
	}
	body["recipientName"] = "Updated Patient"
	body["status"] = "done"
	body["requesterEmail"] = "evil@x.com"
	body["donorEmail"] = "evil@x.com"

	w := env.do(t, http.MethodPut, "/donation-requests/"+dr.ID, token, body)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Updated Patient", data["recipientName"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, owner.Email, data["requesterEmail"])
	assert.Equal(t, "", data["donorEmail"])
}

func TestUpdateRequestAuthorization(t *testing.T) {
	env := newTestEnv()
	owner := activeDonor("owner@x.com", "Owner")
	env.addUser(owner)
	dr := seedRequest(env, owner, entity.RequestPending)

	stranger := env.addUser(activeDonor("stranger@x.com", "Stranger"))
	w := env.do(t, http.MethodPut, "/donation-requests/"+dr.ID, stranger, validRequestBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminUser := activeDonor("admin@x.com", "Admin")
	adminUser.Role = entity.RoleAdmin
	admin := env.addUser(adminUser)
	w = env.do(t, http.MethodPut, "/donation-requests/"+dr.ID, admin, validRequestBody())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDonateEndpoint(t *testing.T) {
	t.Run("donor claims a pending request", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestPending)
		donor := env.addUser(activeDonor("donor@x.com", "Donor"))

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/donate", donor, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "inprogress", data["status"])
		assert.Equal(t, "donor@x.com", data["donorEmail"])
		assert.Equal(t, "Donor", data["donorName"])
	})

	t.Run("requester cannot claim own request", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		token := env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestPending)

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/donate", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("second claim sees a conflict", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestPending)
		first := env.addUser(activeDonor("first@x.com", "First"))
		second := env.addUser(activeDonor("second@x.com", "Second"))

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/donate", first, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/donate", second, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "no longer available")
	})
}

func TestTransitionEndpoint(t *testing.T) {
	t.Run("requester finishes a claimed request", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		token := env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestInProgress)

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/status", token, map[string]string{"status": "done"})
		require.Equal(t, http.StatusOK, w.Code)

		stored, err := env.requests.GetByID(context.Background(), dr.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.RequestDone, stored.Status)
	})

	t.Run("invalid status value gets 400", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		token := env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestPending)

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/status", token, map[string]string{"status": "archived"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unrelated donor gets 403", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestPending)
		stranger := env.addUser(activeDonor("stranger@x.com", "Stranger"))

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/status", stranger, map[string]string{"status": "done"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("volunteer may transition anyone's request", func(t *testing.T) {
		env := newTestEnv()
		owner := activeDonor("owner@x.com", "Owner")
		env.addUser(owner)
		dr := seedRequest(env, owner, entity.RequestPending)
		vol := activeDonor("vol@x.com", "Volunteer")
		vol.Role = entity.RoleVolunteer
		token := env.addUser(vol)

		w := env.do(t, http.MethodPatch, "/donation-requests/"+dr.ID+"/status", token, map[string]string{"status": "canceled"})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestElevatedListing(t *testing.T) {
	env := newTestEnv()
	owner := activeDonor("owner@x.com", "Owner")
	donorToken := env.addUser(owner)
	seedRequest(env, owner, entity.RequestPending)

	vol := activeDonor("vol@x.com", "Volunteer")
	vol.Role = entity.RoleVolunteer
	volToken := env.addUser(vol)

	w := env.do(t, http.MethodGet, "/donation-requests", donorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/donation-requests", volToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	env := newTestEnv()
	owner := activeDonor("owner@x.com", "Owner")
	token := env.addUser(owner)
	dr := seedRequest(env, owner, entity.RequestPending)

	w := env.do(t, http.MethodDelete, "/donation-requests/"+dr.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/donation-requests/"+dr.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRequestInvalidID(t *testing.T) {
	env := newTestEnv()
	token := env.addUser(activeDonor("donor@x.com", "Donor"))

	w := env.do(t, http.MethodGet, "/donation-requests/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv()
	owner := activeDonor("owner@x.com", "Owner")
	env.addUser(owner)
	seedRequest(env, owner, entity.RequestPending)
	seedRequest(env, owner, entity.RequestDone)

	adminUser := activeDonor("admin@x.com", "Admin")
	adminUser.Role = entity.RoleAdmin
	admin := env.addUser(adminUser)

	w := env.do(t, http.MethodGet, "/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_requests"])
	byStatus := data["requests_by_status"].(map[string]interface{})
	assert.Equal(t, float64(1), byStatus["pending"])
	assert.Equal(t, float64(1), byStatus["done"])
}
