package apitests

import (
	"fmt"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/fixtures"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoJSONPlaceholderTests(t *T) {
	t.Epic("JSONPlaceholder API")
	t.Feature("REST API Testing")

	t.Run("get all posts", func(t *T) {
		t.Story("Get All Posts")
		t.Severity("critical")
		t.Description("Verifies that all posts can be retrieved")

		resp := t.Get(t.JSONPlaceholder(fixtures.PostsPath), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		posts := t.RequireArray(resp)
		require.Greater(t, posts.Count(), 0)
		t.RequireFields(posts.GetByIndex(0), fixtures.PostFields...)
	})

	t.Run("get specific post by ID", func(t *T) {
		t.Story("Get Post by ID")
		t.Severity("high")
		t.Description("Verifies that a single post can be retrieved by its ID")

		postID := 1
		resp := t.Get(t.JSONPlaceholder(fmt.Sprintf("%s/%d", fixtures.PostsPath, postID)), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		post := t.RequireObject(resp, fixtures.PostFields...)
		assert.Equal(t, postID, post.GetByKey("id").IntValue())
		assert.Equal(t, fixtures.ValidPost().GetByKey("title"), post.GetByKey("title"))
	})

	t.Run("create a new post", func(t *T) {
		t.Story("Create New Post")
		t.Severity("high")
		t.Description("Verifies that a post can be created with a POST request")

		newPost, err := t.API().CreateTestData(apihelper.EntityPost, ldvalue.Null())
		require.NoError(t, err)

		resp := t.Post(t.JSONPlaceholder(fixtures.PostsPath), newPost, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusCreated)
		created := t.RequireObject(resp, "id", "title", "body", "userId")
		for _, key := range newPost.Keys() {
			assert.Equal(t, newPost.GetByKey(key), created.GetByKey(key), "field %q", key)
		}
	})

	t.Run("update an existing post", func(t *T) {
		t.Story("Update Post")
		t.Severity("medium")
		t.Description("Verifies that a post can be replaced with a PUT request")

		postID := 1
		updated := ldvalue.ObjectBuild().
			Set("id", ldvalue.Int(postID)).
			Set("title", ldvalue.String("Updated Post Title")).
			Set("body", ldvalue.String("This is the updated post body content")).
			Set("userId", ldvalue.Int(1)).
			Build()

		resp := t.Put(t.JSONPlaceholder(fmt.Sprintf("%s/%d", fixtures.PostsPath, postID)), updated, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		result := t.RequireObject(resp, "id", "title", "body")
		assert.Equal(t, updated.GetByKey("title"), result.GetByKey("title"))
		assert.Equal(t, updated.GetByKey("body"), result.GetByKey("body"))
		assert.Equal(t, postID, result.GetByKey("id").IntValue())
	})

	t.Run("delete a post", func(t *T) {
		t.Story("Delete Post")
		t.Severity("medium")
		t.Description("Verifies that a post can be deleted")

		resp := t.Delete(t.JSONPlaceholder(fixtures.PostsPath+"/1"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
	})

	t.Run("get posts for a specific user", func(t *T) {
		t.Story("Get User Posts")
		t.Severity("medium")
		t.Description("Verifies that posts can be filtered by user")

		userID := 1
		resp := t.Get(t.JSONPlaceholder(fixtures.PostsPath), apihelper.RequestOptions{
			Params: map[string]string{"userId": fmt.Sprint(userID)},
		})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		posts := t.RequireArray(resp)
		for i, post := range elements(posts) {
			assert.Equal(t, userID, post.GetByKey("userId").IntValue(), "post %d", i)
		}
	})

	t.Run("handle non-existent post", func(t *T) {
		t.Story("Handle Non-existent Post")
		t.Severity("low")
		t.Description("Verifies the response for a post that does not exist")

		resp := t.Get(t.JSONPlaceholder(fixtures.PostsPath+"/99999"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusNotFound)
	})

	t.Run("validate response headers", func(t *T) {
		t.Story("Validate Response Headers")
		t.Severity("low")
		t.Description("Verifies that responses declare a JSON content type")

		resp := t.Get(t.JSONPlaceholder(fixtures.PostsPath+"/1"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		t.RequireJSON(resp)
	})
}

func elements(array ldvalue.Value) []ldvalue.Value {
	ret := make([]ldvalue.Value, 0, array.Count())
	for i := 0; i < array.Count(); i++ {
		ret = append(ret, array.GetByIndex(i))
	}
	return ret
}
