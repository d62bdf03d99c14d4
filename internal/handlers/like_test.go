package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

func TestToggleLike(t *testing.T) {
	api := newTestAPI(t)
	_, ownerToken := api.login(t, "a@x.com", false)
	_, likerToken := api.login(t, "b@x.com", false)
	music := createCategory(t, api, "Music")

	rec := api.do(t, http.MethodPost, "/api/posts/create", ownerToken, PostRequest{Title: "T", Content: "C", CategoryID: music.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeBody[types.Post](t, rec)
	path := "/api/likes/add/" + itoa(post.ID)

	rec = api.do(t, http.MethodPost, path, ownerToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Owner of the post cannot like it", detailOf(t, rec))

	rec = api.do(t, http.MethodPost, path, likerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fixture(t, "like_response.json"), rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/posts/"+itoa(post.ID), likerToken, nil)
	assert.Equal(t, 1, decodeBody[types.Post](t, rec).LikesCount)

	rec = api.do(t, http.MethodPost, path, likerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[LikeResponse](t, rec)
	assert.False(t, resp.Liked)
	assert.Equal(t, "Post was successfully unliked", resp.Message)

	rec = api.do(t, http.MethodPost, "/api/likes/add/999", likerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
