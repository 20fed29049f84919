package apitests

import (
	"fmt"
	"regexp"

	"github.com/rajkumar-bhange/api-testing-demo/apihelper"
	"github.com/rajkumar-bhange/api-testing-demo/fixtures"

	"golang.org/x/sync/errgroup"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func DoEnhancedTests(t *T) {
	t.Epic("Enhanced API Testing")
	t.Feature("Utility-based API Tests")

	t.Run("create and validate user", func(t *T) {
		t.Story("Create User with Utilities")
		t.Severity("high")
		t.Description("Creates a user from generated test data and validates the result")

		newUser, err := t.API().CreateTestData(apihelper.EntityUser, ldvalue.ObjectBuild().
			Set("name", ldvalue.String("John Doe")).
			Set("email", ldvalue.String("john.doe@example.com")).
			Build())
		require.NoError(t, err)

		resp := t.Post(t.JSONPlaceholder(fixtures.UsersPath), newUser, apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusCreated)
		created := t.RequireObject(resp, "name", "email", "id")
		assert.Equal(t, "John Doe", created.GetByKey("name").StringValue())
		assert.Equal(t, "john.doe@example.com", created.GetByKey("email").StringValue())
	})

	t.Run("retry mechanism", func(t *T) {
		t.Story("API Test with Retry")
		t.Severity("medium")
		t.Description("Fetches a post through the retry-with-backoff helper")

		resp, err := t.API().RetryRequest(func() (apihelper.Response, error) {
			return t.API().Get(t.JSONPlaceholder(fixtures.PostsPath+"/1"), apihelper.RequestOptions{})
		}, apihelper.DefaultMaxRetries)
		require.NoError(t, err)

		t.RequireStatus(resp, fixtures.StatusSuccess)
		post := t.RequireObject(resp, fixtures.PostFields...)
		assert.Equal(t, 1, post.GetByKey("id").IntValue())
	})

	t.Run("validate response time", func(t *T) {
		t.Story("Validate Response Time")
		t.Severity("medium")
		t.Description("Verifies that the post list is returned within the normal limit")

		start := t.Now()
		resp := t.Get(t.JSONPlaceholder(fixtures.PostsPath), apihelper.RequestOptions{})
		elapsed := t.RequireResponseTime(start, fixtures.ResponseTimeNormal)
		t.Debug("response time was %s", elapsed)

		t.RequireStatus(resp, fixtures.StatusSuccess)
		posts := t.RequireArray(resp)
		assert.Greater(t, posts.Count(), 0)
	})

	t.Run("multiple endpoints in sequence", func(t *T) {
		t.Story("Sequential API Testing")
		t.Severity("high")
		t.Description("Follows a user to their posts and a post to its comments")

		resp := t.Get(t.JSONPlaceholder(fixtures.UsersPath), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		users := t.RequireArray(resp)
		require.Greater(t, users.Count(), 0)
		userID := users.GetByIndex(0).GetByKey("id").IntValue()

		resp = t.Get(t.JSONPlaceholder(fixtures.PostsPath), apihelper.RequestOptions{
			Params: map[string]string{"userId": fmt.Sprint(userID)},
		})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		posts := t.RequireArray(resp)
		if posts.Count() == 0 {
			return
		}
		postID := posts.GetByIndex(0).GetByKey("id").IntValue()

		resp = t.Get(t.JSONPlaceholder(fixtures.CommentsPath), apihelper.RequestOptions{
			Params: map[string]string{"postId": fmt.Sprint(postID)},
		})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		comments := t.RequireArray(resp)
		for i, comment := range elements(comments) {
			assert.Equal(t, postID, comment.GetByKey("postId").IntValue(), "comment %d", i)
		}
	})

	t.Run("error handling", func(t *T) {
		t.Story("Error Handling Test")
		t.Severity("medium")
		t.Description("Verifies responses for missing resources and unknown endpoints")

		resp := t.Get(t.JSONPlaceholder(fixtures.PostsPath+"/99999"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusNotFound)

		resp = t.Get(t.JSONPlaceholder("/invalid-endpoint"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusNotFound)
	})

	t.Run("data validation", func(t *T) {
		t.Story("Data Validation Test")
		t.Severity("medium")
		t.Description("Verifies the field types of a user record")

		resp := t.Get(t.JSONPlaceholder(fixtures.UsersPath+"/1"), apihelper.RequestOptions{})
		t.RequireStatus(resp, fixtures.StatusSuccess)
		user := t.RequireObject(resp, "id", "name", "username", "email", "phone", "website")

		assert.Equal(t, ldvalue.NumberType, user.GetByKey("id").Type())
		for _, field := range []string{"name", "username", "email", "phone", "website"} {
			assert.Equal(t, ldvalue.StringType, user.GetByKey(field).Type(), "field %q", field)
		}
		assert.Regexp(t, emailPattern, user.GetByKey("email").StringValue())
		assert.Equal(t, fixtures.ValidUser().GetByKey("username"), user.GetByKey("username"))
	})

	t.Run("concurrent requests", func(t *T) {
		t.Story("Concurrent API Testing")
		t.Severity("high")
		t.Description("Issues several requests at once and validates all of them")

		paths := []string{fixtures.UsersPath, fixtures.PostsPath, fixtures.CommentsPath}
		responses := make([]apihelper.Response, len(paths))
		start := t.Now()

		// Assertions must not run on these goroutines, so they only collect results.
		var g errgroup.Group
		for i, path := range paths {
			i, url := i, t.JSONPlaceholder(path)
			g.Go(func() error {
				resp, err := t.API().Get(url, apihelper.RequestOptions{})
				responses[i] = resp
				return err
			})
		}
		require.NoError(t, g.Wait())
		t.RequireResponseTime(start, fixtures.ResponseTimeSlow)

		for i, resp := range responses {
			t.RequireStatus(resp, fixtures.StatusSuccess)
			items := t.RequireArray(resp)
			assert.Greater(t, items.Count(), 0, "response from %s", paths[i])
		}
	})

	t.Run("wait for condition", func(t *T) {
		t.Story("Condition Polling")
		t.Severity("low")
		t.Description("Polls until a resource is reachable")

		checks := 0
		err := t.API().WaitForCondition(func() (bool, error) {
			checks++
			resp, err := t.API().Get(t.JSONPlaceholder(fixtures.PostsPath+"/1"), apihelper.RequestOptions{})
			if err != nil {
				return false, nil
			}
			return resp.Status() == fixtures.StatusSuccess, nil
		}, fixtures.ResponseTimeSlow)
		require.NoError(t, err)
		t.Debug("condition met after %d checks", checks)
	})
}
