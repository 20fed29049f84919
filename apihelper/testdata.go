package apihelper

import (
	"fmt"
	"math/rand"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// EntityType identifies one of the fixture records that CreateTestData can produce.
type EntityType string

const (
	EntityUser    EntityType = "user"
	EntityPost    EntityType = "post"
	EntityComment EntityType = "comment"
)

// AllEntityTypes lists every EntityType that has a fixture.
var AllEntityTypes = []EntityType{EntityUser, EntityPost, EntityComment}

var entityDefaults = map[EntityType]ldvalue.Value{
	EntityUser: ldvalue.ObjectBuild().
		Set("name", ldvalue.String("Test User")).
		Set("email", ldvalue.String("test@example.com")).
		Set("username", ldvalue.String("testuser")).
		Set("phone", ldvalue.String("123-456-7890")).
		Build(),
	EntityPost: ldvalue.ObjectBuild().
		Set("title", ldvalue.String("Test Post Title")).
		Set("body", ldvalue.String("This is a test post body content")).
		Set("userId", ldvalue.Int(1)).
		Build(),
	EntityComment: ldvalue.ObjectBuild().
		Set("postId", ldvalue.Int(1)).
		Set("name", ldvalue.String("Test Commenter")).
		Set("email", ldvalue.String("commenter@example.com")).
		Set("body", ldvalue.String("This is a test comment")).
		Build(),
}

// ParseEntityType converts a tag such as "user" into an EntityType.
func ParseEntityType(tag string) (EntityType, error) {
	kind := EntityType(tag)
	if _, ok := entityDefaults[kind]; !ok {
		return "", unknownEntityType(tag)
	}
	return kind, nil
}

func unknownEntityType(tag string) error {
	return fmt.Errorf("%w: %q (known types are %v)", ErrUnknownEntityType, tag, AllEntityTypes)
}

// CreateTestData returns the default fixture for kind with overrides applied on top. The
// merge is shallow: each key in overrides replaces the default value for that key as a
// whole, and defaults that are not overridden are kept. overrides may be a null value.
//
// An unknown kind is an error rather than an empty record.
func (h *Helper) CreateTestData(kind EntityType, overrides ldvalue.Value) (ldvalue.Value, error) {
	defaults, ok := entityDefaults[kind]
	if !ok {
		return ldvalue.Null(), unknownEntityType(string(kind))
	}
	if !overrides.IsNull() && overrides.Type() != ldvalue.ObjectType {
		return ldvalue.Null(), fmt.Errorf("test data overrides must be an object, not %s", overrides.Type())
	}
	b := ldvalue.ObjectBuild()
	for _, k := range defaults.Keys() {
		b.Set(k, defaults.GetByKey(k))
	}
	for _, k := range overrides.Keys() {
		b.Set(k, overrides.GetByKey(k))
	}
	return b.Build(), nil
}

// RandomData is a synthetic record that is different on every call, for tests that need
// values unlikely to collide with existing data.
type RandomData struct {
	ID           int    `json:"id"`
	Timestamp    int64  `json:"timestamp"`
	RandomString string `json:"randomString"`
	RandomEmail  string `json:"randomEmail"`
}

// AsValue returns the record as a JSON object value.
func (r RandomData) AsValue() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.Int(r.ID)).
		Set("timestamp", ldvalue.Float64(float64(r.Timestamp))).
		Set("randomString", ldvalue.String(r.RandomString)).
		Set("randomEmail", ldvalue.String(r.RandomEmail)).
		Build()
}

// GenerateRandomData creates a RandomData from the current time and a random number in
// [0, 1000). Uniqueness is only probabilistic.
func (h *Helper) GenerateRandomData() RandomData {
	id := rand.Intn(1000)
	timestamp := h.clock.Now().UnixNano() / 1e6
	return RandomData{
		ID:           id,
		Timestamp:    timestamp,
		RandomString: fmt.Sprintf("test_%d_%d", id, timestamp),
		RandomEmail:  fmt.Sprintf("test%d@example.com", id),
	}
}
