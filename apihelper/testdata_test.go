package apihelper

import (
	"errors"
	"fmt"
	"testing"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTestDataWithoutOverridesReturnsDefaults(t *testing.T) {
	h := New(&fakeTransport{})

	post, err := h.CreateTestData(EntityPost, ldvalue.Null())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"title", "body", "userId"}, post.Keys())
	assert.Equal(t, "Test Post Title", post.GetByKey("title").StringValue())
	assert.Equal(t, "This is a test post body content", post.GetByKey("body").StringValue())
	assert.Equal(t, 1, post.GetByKey("userId").IntValue())
}

func TestCreateTestDataOverridesTakePrecedence(t *testing.T) {
	h := New(&fakeTransport{})
	overrideSets := []ldvalue.Value{
		ldvalue.ObjectBuild().Build(),
		ldvalue.ObjectBuild().Set("name", ldvalue.String("John Doe")).Build(),
		ldvalue.ObjectBuild().Set("email", ldvalue.String("john.doe@example.com")).Set("extra", ldvalue.Bool(true)).Build(),
		ldvalue.ObjectBuild().Set("userId", ldvalue.Int(7)).Set("postId", ldvalue.Null()).Build(),
	}

	for _, kind := range AllEntityTypes {
		defaults := entityDefaults[kind]
		for i, overrides := range overrideSets {
			t.Run(fmt.Sprintf("%s/%d", kind, i), func(t *testing.T) {
				result, err := h.CreateTestData(kind, overrides)
				require.NoError(t, err)

				for _, k := range overrides.Keys() {
					assert.Equal(t, overrides.GetByKey(k), result.GetByKey(k), "override for %q", k)
				}
				for _, k := range defaults.Keys() {
					if _, overridden := findKey(overrides, k); !overridden {
						assert.Equal(t, defaults.GetByKey(k), result.GetByKey(k), "default for %q", k)
					}
				}
			})
		}
	}
}

func findKey(v ldvalue.Value, key string) (ldvalue.Value, bool) {
	for _, k := range v.Keys() {
		if k == key {
			return v.GetByKey(k), true
		}
	}
	return ldvalue.Null(), false
}

func TestCreateTestDataMergeIsShallow(t *testing.T) {
	h := New(&fakeTransport{})
	address := ldvalue.ObjectBuild().Set("city", ldvalue.String("Gwenborough")).Build()

	user, err := h.CreateTestData(EntityUser, ldvalue.ObjectBuild().Set("name", address).Build())
	require.NoError(t, err)

	assert.Equal(t, address, user.GetByKey("name"))
	assert.Equal(t, "test@example.com", user.GetByKey("email").StringValue())
}

func TestCreateTestDataRejectsUnknownType(t *testing.T) {
	h := New(&fakeTransport{})

	_, err := h.CreateTestData(EntityType("album"), ldvalue.Null())
	assert.True(t, errors.Is(err, ErrUnknownEntityType))
	assert.EqualError(t, err, `unknown entity type: "album" (known types are [user post comment])`)
}

func TestCreateTestDataRejectsNonObjectOverrides(t *testing.T) {
	h := New(&fakeTransport{})

	_, err := h.CreateTestData(EntityComment, ldvalue.ArrayOf(ldvalue.Int(1)))
	assert.Error(t, err)
}

func TestParseEntityType(t *testing.T) {
	kind, err := ParseEntityType("comment")
	require.NoError(t, err)
	assert.Equal(t, EntityComment, kind)

	_, err = ParseEntityType("todo")
	assert.True(t, errors.Is(err, ErrUnknownEntityType))
}

func TestGenerateRandomData(t *testing.T) {
	clock := newFakeClock()
	h := New(&fakeTransport{}, WithClock(clock))
	expectedTimestamp := clock.Now().UnixNano() / 1e6

	for i := 0; i < 50; i++ {
		data := h.GenerateRandomData()
		assert.GreaterOrEqual(t, data.ID, 0)
		assert.Less(t, data.ID, 1000)
		assert.Equal(t, expectedTimestamp, data.Timestamp)
		assert.Equal(t, fmt.Sprintf("test_%d_%d", data.ID, expectedTimestamp), data.RandomString)
		assert.Equal(t, fmt.Sprintf("test%d@example.com", data.ID), data.RandomEmail)
	}
}

func TestRandomDataAsValue(t *testing.T) {
	data := RandomData{ID: 5, Timestamp: 1700000000000, RandomString: "test_5_1700000000000", RandomEmail: "test5@example.com"}

	v := data.AsValue()
	assert.Equal(t, 5, v.GetByKey("id").IntValue())
	assert.Equal(t, float64(1700000000000), v.GetByKey("timestamp").Float64Value())
	assert.Equal(t, "test5@example.com", v.GetByKey("randomEmail").StringValue())
}
